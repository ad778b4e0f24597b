package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context.
type TestContext interface {
	Do(method, path string, body any) error
	UseAPIKey()
	UseUsername(username string)
	ClearAuthorization()
	SetAuthorization(header string)
	ResponseContains(text string) bool
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
	GetLastResponseBody() []byte
}

// RegisterSteps registers common step definitions used across features.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Background steps
	ctx.Step(`^the applicant records API is running$`, steps.apiIsRunning)

	// Credential steps
	ctx.Step(`^I use the configured API key$`, steps.useAPIKey)
	ctx.Step(`^I use the username "([^"]*)"$`, steps.useUsername)
	ctx.Step(`^I send no credentials$`, steps.sendNoCredentials)
	ctx.Step(`^I send the Authorization header "([^"]*)"$`, steps.sendAuthorizationHeader)

	// Generic request steps
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I (POST|PUT|DELETE) "([^"]*)" with body '([^']*)'$`, steps.sendWithBody)
	ctx.Step(`^I (POST|PUT|DELETE) "([^"]*)" without a body$`, steps.sendWithoutBody)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, steps.responseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.responseFieldShouldEqual)
	ctx.Step(`^the response should be an empty list$`, steps.responseShouldBeEmptyList)
	ctx.Step(`^the response should be a list of (\d+) records?$`, steps.responseShouldBeListOf)
	ctx.Step(`^the response header "([^"]*)" should start with "([^"]*)"$`, steps.responseHeaderShouldStartWith)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) apiIsRunning(_ context.Context) error {
	if err := s.tc.Do("GET", "/health/live", nil); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("liveness probe returned %d", status)
	}
	return nil
}

func (s *commonSteps) useAPIKey(_ context.Context) error {
	s.tc.UseAPIKey()
	return nil
}

func (s *commonSteps) useUsername(_ context.Context, username string) error {
	s.tc.UseUsername(username)
	return nil
}

func (s *commonSteps) sendNoCredentials(_ context.Context) error {
	s.tc.ClearAuthorization()
	return nil
}

func (s *commonSteps) sendAuthorizationHeader(_ context.Context, header string) error {
	s.tc.SetAuthorization(header)
	return nil
}

func (s *commonSteps) get(_ context.Context, path string) error {
	return s.tc.Do("GET", path, nil)
}

func (s *commonSteps) sendWithBody(_ context.Context, method, path, body string) error {
	return s.tc.Do(method, path, json.RawMessage(body))
}

func (s *commonSteps) sendWithoutBody(_ context.Context, method, path string) error {
	return s.tc.Do(method, path, nil)
}

func (s *commonSteps) responseStatusShouldBe(_ context.Context, expectedStatus int) error {
	actualStatus := s.tc.GetLastResponseStatus()
	if actualStatus != expectedStatus {
		return fmt.Errorf("expected status %d but got %d", expectedStatus, actualStatus)
	}
	return nil
}

func (s *commonSteps) responseShouldContain(_ context.Context, text string) error {
	if !s.tc.ResponseContains(text) {
		return fmt.Errorf("response does not contain: %s\nResponse: %s", text, string(s.tc.GetLastResponseBody()))
	}
	return nil
}

func (s *commonSteps) responseFieldShouldEqual(_ context.Context, field, expectedValue string) error {
	var data map[string]any
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &data); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	actualValue, ok := data[field]
	if !ok {
		return fmt.Errorf("field %s not found in response", field)
	}
	if fmt.Sprint(actualValue) != expectedValue {
		return fmt.Errorf("field %s: expected %s but got %v", field, expectedValue, actualValue)
	}
	return nil
}

func (s *commonSteps) responseShouldBeEmptyList(ctx context.Context) error {
	return s.responseShouldBeListOf(ctx, 0)
}

func (s *commonSteps) responseShouldBeListOf(_ context.Context, n int) error {
	var list []json.RawMessage
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &list); err != nil {
		return fmt.Errorf("response is not a JSON array: %w", err)
	}
	if list == nil {
		return fmt.Errorf("response is null, expected an array")
	}
	if len(list) != n {
		return fmt.Errorf("expected %d records but got %d", n, len(list))
	}
	return nil
}

func (s *commonSteps) responseHeaderShouldStartWith(_ context.Context, name, prefix string) error {
	got := s.tc.GetLastResponseHeader(name)
	if !strings.HasPrefix(got, prefix) {
		return fmt.Errorf("header %s: expected prefix %q but got %q", name, prefix, got)
	}
	return nil
}
