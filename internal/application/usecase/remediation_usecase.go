package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/repository"
	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
)

// RemediationUseCase starts the stop automation when a budget alert fires.
type RemediationUseCase struct {
	automationRepo repository.AutomationRepository
	instanceRepo   repository.InstanceRepository
	console        types.ConsoleInterface
}

// NewRemediationUseCase creates a new remediation use case. instanceRepo may be nil.
func NewRemediationUseCase(
	automationRepo repository.AutomationRepository,
	instanceRepo repository.InstanceRepository,
	console types.ConsoleInterface,
) *RemediationUseCase {
	return &RemediationUseCase{
		automationRepo: automationRepo,
		instanceRepo:   instanceRepo,
		console:        console,
	}
}

// Trigger logs the alert and starts the automation. The event content does not
// change what is started.
func (uc *RemediationUseCase) Trigger(ctx context.Context, env types.RemediationEnv, event json.RawMessage) (entity.RemediationResult, error) {
	uc.console.LogInfo("Budget alert received: %s", string(event))

	var targeted []string
	if env.PreviewTargets && uc.instanceRepo != nil {
		instances, err := uc.instanceRepo.ListTaggedInstances(ctx, env.TagKey, env.TagValue)
		if err != nil {
			uc.console.LogWarning("Could not list instances tagged %s=%s: %v", env.TagKey, env.TagValue, err)
		} else {
			for _, inst := range instances {
				targeted = append(targeted, inst.InstanceID)
				uc.console.LogInfo("In scope: %s (%s) %s", inst.InstanceID, inst.State, inst.Name)
			}
			if len(instances) == 0 {
				uc.console.LogWarning("No running instances carry %s=%s", env.TagKey, env.TagValue)
			}
		}
	}

	executionID, err := uc.automationRepo.StartAutomation(ctx, env.DocumentName, entity.RemediationParams{
		AssumeRoleARN: env.AssumeRoleARN,
		TagKey:        env.TagKey,
		TagValue:      env.TagValue,
	})
	if err != nil {
		uc.console.LogError("Automation %s failed to start: %v", env.DocumentName, err)
		return entity.RemediationResult{}, fmt.Errorf("%w: starting %s: %w", types.ErrAutomation, env.DocumentName, err)
	}

	uc.console.LogSuccess("Started automation %s: %s", env.DocumentName, executionID)
	return entity.RemediationResult{
		OK:                    true,
		AutomationExecutionID: executionID,
		DocumentName:          env.DocumentName,
		TargetedInstances:     targeted,
	}, nil
}
