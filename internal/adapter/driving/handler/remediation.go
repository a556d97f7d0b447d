package handler

import (
	"context"
	"encoding/json"
	"fmt"

	awsadapter "github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/aws"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/config"
	"github.com/alexlux58/AWS-ALERTING/internal/application/usecase"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/repository"
	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/alexlux58/AWS-ALERTING/pkg/console"
)

// RemediationHandler serves budget alert notifications.
type RemediationHandler struct {
	console *console.Console
	clients *awsadapter.ClientProvider
}

// NewRemediationHandler creates the handler with the default credential chain.
func NewRemediationHandler(c *console.Console) *RemediationHandler {
	return &RemediationHandler{console: c, clients: awsadapter.NewClientProvider("", "")}
}

// Handle starts the stop automation. Any event shape is accepted.
func (h *RemediationHandler) Handle(ctx context.Context, event json.RawMessage) (entity.RemediationResult, error) {
	log := h.console.WithFields("request_id", RequestID(ctx))

	env, err := config.LoadRemediationEnv(nil)
	if err != nil {
		log.LogError("%v", err)
		return entity.RemediationResult{}, err
	}

	uc, err := BuildRemediationUseCase(ctx, h.clients, env, log)
	if err != nil {
		log.LogError("%v", err)
		return entity.RemediationResult{}, err
	}

	return uc.Trigger(ctx, env, event)
}

// BuildRemediationUseCase wires remediation against AWS. EC2 is only used for the preview.
func BuildRemediationUseCase(ctx context.Context, clients *awsadapter.ClientProvider, env types.RemediationEnv, c types.ConsoleInterface) (*usecase.RemediationUseCase, error) {
	automationRepo, err := clients.SSMRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}

	var instanceRepo repository.InstanceRepository
	if env.PreviewTargets {
		ec2Repo, err := clients.InstanceRepository(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		instanceRepo = ec2Repo
	}

	return usecase.NewRemediationUseCase(automationRepo, instanceRepo, c), nil
}
