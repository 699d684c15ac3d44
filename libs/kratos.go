package libs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"news-portal/models"
	"news-portal/services"

	"github.com/google/uuid"
	kratosclient "github.com/ory/kratos-client-go"
)

// KratosIdentityProvider delegates credentials to an Ory Kratos
// deployment through its native (API) self-service flows.
type KratosIdentityProvider struct {
	public *kratosclient.APIClient
	admin  *kratosclient.APIClient
	logger *slog.Logger
}

func NewKratosIdentityProvider(publicURL, adminURL string, logger *slog.Logger) (*KratosIdentityProvider, error) {
	for _, raw := range []string{publicURL, adminURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid kratos url %q", raw)
		}
	}

	return &KratosIdentityProvider{
		public: newKratosClient(publicURL),
		admin:  newKratosClient(adminURL),
		logger: logger,
	}, nil
}

func newKratosClient(baseURL string) *kratosclient.APIClient {
	cfg := kratosclient.NewConfiguration()
	cfg.Servers = []kratosclient.ServerConfiguration{{URL: baseURL}}
	cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	cfg.DefaultHeader = map[string]string{"Accept": "application/json"}
	return kratosclient.NewAPIClient(cfg)
}

func (k *KratosIdentityProvider) SignUp(ctx context.Context, email, password string) (*models.Identity, error) {
	flow, resp, err := k.public.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, k.upstream("create registration flow", resp, err)
	}

	body := kratosclient.UpdateRegistrationFlowWithPasswordMethod{
		Method:   "password",
		Password: password,
		Traits:   map[string]interface{}{"email": email},
	}
	result, resp, err := k.public.FrontendAPI.UpdateRegistrationFlow(ctx).
		Flow(flow.GetId()).
		UpdateRegistrationFlowBody(kratosclient.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&body)).
		Execute()
	if err != nil {
		if duplicateIdentifier(resp, err) {
			return nil, services.ErrEmailTaken
		}
		return nil, k.upstream("submit registration", resp, err)
	}

	identity := result.GetIdentity()
	return k.toIdentity(identity.GetId(), email, result.GetSessionToken())
}

func (k *KratosIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	flow, resp, err := k.public.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, k.upstream("create login flow", resp, err)
	}

	body := kratosclient.UpdateLoginFlowWithPasswordMethod{
		Identifier: email,
		Method:     "password",
		Password:   password,
	}
	result, resp, err := k.public.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.GetId()).
		UpdateLoginFlowBody(kratosclient.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&body)).
		Execute()
	if err != nil {
		if status(resp) == http.StatusBadRequest || status(resp) == http.StatusUnauthorized {
			return nil, services.ErrInvalidCredentials
		}
		return nil, k.upstream("submit login", resp, err)
	}

	session := result.GetSession()
	identity := session.GetIdentity()
	return k.toIdentity(identity.GetId(), email, result.GetSessionToken())
}

func (k *KratosIdentityProvider) SignOut(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	resp, err := k.public.FrontendAPI.PerformNativeLogout(ctx).
		PerformNativeLogoutBody(*kratosclient.NewPerformNativeLogoutBody(sessionToken)).
		Execute()
	if err != nil {
		// An already revoked session is as good as logged out.
		if status(resp) == http.StatusBadRequest || status(resp) == http.StatusForbidden {
			return nil
		}
		return k.upstream("logout", resp, err)
	}
	return nil
}

func (k *KratosIdentityProvider) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	current, resp, err := k.admin.IdentityAPI.GetIdentity(ctx, id.String()).Execute()
	if err != nil {
		if status(resp) == http.StatusNotFound {
			return services.ErrIdentityNotFound
		}
		return k.upstream("get identity", resp, err)
	}

	traits, _ := current.GetTraits().(map[string]interface{})
	state := current.GetState()
	if state == "" {
		state = "active"
	}

	body := kratosclient.UpdateIdentityBody{
		SchemaId: current.GetSchemaId(),
		State:    state,
		Traits:   traits,
		Credentials: &kratosclient.IdentityWithCredentials{
			Password: &kratosclient.IdentityWithCredentialsPassword{
				Config: &kratosclient.IdentityWithCredentialsPasswordConfig{
					Password: &password,
				},
			},
		},
	}
	_, resp, err = k.admin.IdentityAPI.UpdateIdentity(ctx, id.String()).UpdateIdentityBody(body).Execute()
	if err != nil {
		if status(resp) == http.StatusNotFound {
			return services.ErrIdentityNotFound
		}
		return k.upstream("update identity", resp, err)
	}
	return nil
}

func (k *KratosIdentityProvider) Delete(ctx context.Context, id uuid.UUID) error {
	resp, err := k.admin.IdentityAPI.DeleteIdentity(ctx, id.String()).Execute()
	if err != nil && status(resp) != http.StatusNotFound {
		return k.upstream("delete identity", resp, err)
	}
	return nil
}

func (k *KratosIdentityProvider) toIdentity(rawID, email, sessionToken string) (*models.Identity, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("kratos returned identity id %q: %w", rawID, err)
	}
	return &models.Identity{ID: id, Email: email, SessionToken: sessionToken}, nil
}

func (k *KratosIdentityProvider) upstream(op string, resp *http.Response, err error) error {
	var apiErr *kratosclient.GenericOpenAPIError
	if errors.As(err, &apiErr) {
		k.logger.Warn("kratos request failed", "op", op, "status", status(resp), "body", string(apiErr.Body()))
	} else {
		k.logger.Warn("kratos request failed", "op", op, "error", err)
	}
	return fmt.Errorf("kratos %s: %w", op, err)
}

// duplicateIdentifier reports whether Kratos rejected a registration
// because the identifier exists. The flow is re-rendered as a 400 with
// message id 4000007 in that case.
func duplicateIdentifier(resp *http.Response, err error) bool {
	switch status(resp) {
	case http.StatusConflict:
		return true
	case http.StatusBadRequest:
		var apiErr *kratosclient.GenericOpenAPIError
		return errors.As(err, &apiErr) && bytes.Contains(apiErr.Body(), []byte("4000007"))
	}
	return false
}

func status(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
