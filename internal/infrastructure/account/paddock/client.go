// Package paddock verifies access tokens against the paddock account
// service and resolves them to principals.
package paddock

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/platform/cache"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
	"github.com/pitwall/fantasy-gp/internal/platform/resilience"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

// errPaddockTransient marks failures that should trip the circuit breaker.
// Denied or malformed tokens never count against it.
var errPaddockTransient = errors.New("paddock transient failure")

const principalCacheTTL = 30 * time.Second

type Client struct {
	httpClient    *http.Client
	introspectURL string
	breaker       *resilience.CircuitBreaker
	flight        resilience.SingleFlight
	principals    *cache.Store
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		breaker:       resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		principals:    cache.NewStore(principalCacheTTL),
		logger:        logger,
	}
}

// VerifyAccessToken resolves a bearer token to a principal. Recently
// verified tokens are served from a short-lived cache; concurrent lookups
// for the same token share one upstream call.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if cached, ok := c.principals.Get(ctx, key); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	result, err, _ := c.flight.Do(key, func() (any, error) {
		principal, err := c.introspect(ctx, token)
		if err != nil {
			return nil, err
		}
		c.principals.Set(ctx, key, principal)
		return principal, nil
	})
	if err != nil {
		if errors.Is(err, errPaddockTransient) || errors.Is(err, resilience.ErrCircuitOpen) {
			return user.Principal{}, fmt.Errorf("%w: account service unavailable", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	principal, ok := result.(user.Principal)
	if !ok {
		return user.Principal{}, errors.AssertionFailedf("unexpected introspection result type %T", result)
	}

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if err := c.breaker.Allow(); err != nil {
		return user.Principal{}, err
	}

	principal, err := c.doIntrospect(ctx, token)
	if err != nil {
		if errors.Is(err, errPaddockTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return user.Principal{}, err
	}

	c.breaker.RecordSuccess()
	return principal, nil
}

func (c *Client) doIntrospect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, errors.Mark(errors.Wrap(err, "request introspection to paddock"), errPaddockTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, errors.Mark(errors.Wrap(err, "read introspect response"), errPaddockTransient)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "paddock introspection non-200",
			"status_code", resp.StatusCode,
		)
		err := errors.Newf("paddock introspection failed with status %d", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			err = errors.Mark(err, errPaddockTransient)
		}
		return user.Principal{}, err
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, errors.Wrap(err, "unmarshal introspect response")
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, errors.New("invalid introspect response: user_id is empty")
	}

	role := user.Role(decoded.Role)
	if role != user.RoleAdmin {
		role = user.RoleStandard
	}

	return user.Principal{
		UserID:   decoded.UserID,
		Username: decoded.Username,
		Role:     role,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active   bool   `json:"active"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
