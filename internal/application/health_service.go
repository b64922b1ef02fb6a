package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/page-migration/internal/ports"
)

const APIKeySecret = "dust/api_key"

type HealthCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

type HealthSettings struct {
	WorkspaceID string
	AgentID     string
	// APIKey set directly in configuration; the secret store is asked otherwise.
	APIKey string
}

type HealthService struct {
	settings  HealthSettings
	secrets   ports.SecretStore
	newClient func(apiKey string) (ports.AgentClient, error)
}

func NewHealthService(settings HealthSettings, secrets ports.SecretStore, newClient func(apiKey string) (ports.AgentClient, error)) *HealthService {
	return &HealthService{settings: settings, secrets: secrets, newClient: newClient}
}

func (s *HealthService) Check(ctx context.Context) []HealthCheck {
	checks := []HealthCheck{
		settingCheck("DUST_WORKSPACE_ID", s.settings.WorkspaceID),
		settingCheck("DUST_AGENT_ID", s.settings.AgentID),
	}

	apiKey, keyCheck := s.apiKeyCheck(ctx)
	checks = append(checks, keyCheck)
	checks = append(checks, s.clientCheck(apiKey, keyCheck.OK))

	return checks
}

func Healthy(checks []HealthCheck) bool {
	for _, check := range checks {
		if !check.OK {
			return false
		}
	}
	return true
}

func settingCheck(name, value string) HealthCheck {
	if strings.TrimSpace(value) == "" {
		return HealthCheck{Name: name, Detail: "missing"}
	}
	return HealthCheck{Name: name, OK: true, Detail: "set"}
}

func (s *HealthService) apiKeyCheck(ctx context.Context) (string, HealthCheck) {
	check := HealthCheck{Name: "DUST_API_KEY"}

	if key := strings.TrimSpace(s.settings.APIKey); key != "" {
		check.OK = true
		check.Detail = "set in configuration"
		return key, check
	}
	if s.secrets == nil {
		check.Detail = "missing"
		return "", check
	}

	key, err := s.secrets.Get(ctx, APIKeySecret)
	if err != nil {
		check.Detail = fmt.Sprintf("not resolvable: %v", err)
		return "", check
	}

	check.OK = true
	check.Detail = "resolved from secret store"
	return key, check
}

func (s *HealthService) clientCheck(apiKey string, keyOK bool) HealthCheck {
	check := HealthCheck{Name: "Agent API client"}

	if !keyOK || strings.TrimSpace(s.settings.WorkspaceID) == "" {
		check.OK = true
		check.Detail = "skipped (missing credentials)"
		return check
	}

	client, err := s.newClient(apiKey)
	if err != nil {
		check.Detail = fmt.Sprintf("configuration error: %v", err)
		return check
	}

	check.OK = true
	check.Detail = "configured for workspace " + client.WorkspaceID()
	return check
}
