package e2e

import (
	"github.com/cucumber/godog"

	"applicant-records/e2e/steps/common"
	"applicant-records/e2e/steps/notes"
)

// RegisterSteps registers all step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	notes.RegisterSteps(ctx, tc)
}
