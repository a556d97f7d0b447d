package aws

import (
	"context"
	"fmt"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// GetParameters accepts at most ten names per call.
const maxParametersPerCall = 10

// SSMAPI is the subset of the SSM client used here.
type SSMAPI interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
	StartAutomationExecution(ctx context.Context, params *ssm.StartAutomationExecutionInput, optFns ...func(*ssm.Options)) (*ssm.StartAutomationExecutionOutput, error)
}

// SSMRepository implements repository.ParameterRepository and repository.AutomationRepository.
type SSMRepository struct {
	client SSMAPI
}

// NewSSMRepository wraps an SSM client.
func NewSSMRepository(client SSMAPI) *SSMRepository {
	return &SSMRepository{client: client}
}

// GetParameters fetches decrypted values in batches. Unknown names are left out of the result.
func (r *SSMRepository) GetParameters(ctx context.Context, names []string) (map[string]string, error) {
	values := make(map[string]string, len(names))

	for start := 0; start < len(names); start += maxParametersPerCall {
		end := start + maxParametersPerCall
		if end > len(names) {
			end = len(names)
		}

		result, err := r.client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          names[start:end],
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("error getting SSM parameters: %w", err)
		}

		for _, p := range result.Parameters {
			values[aws.ToString(p.Name)] = aws.ToString(p.Value)
		}
	}

	return values, nil
}

// StartAutomation starts the tag-scoped automation document and returns its execution id.
func (r *SSMRepository) StartAutomation(ctx context.Context, documentName string, params entity.RemediationParams) (string, error) {
	result, err := r.client.StartAutomationExecution(ctx, &ssm.StartAutomationExecutionInput{
		DocumentName: aws.String(documentName),
		Parameters: map[string][]string{
			"AutomationAssumeRole": {params.AssumeRoleARN},
			"TagKey":               {params.TagKey},
			"TagValue":             {params.TagValue},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error starting automation %s: %w", documentName, err)
	}
	return aws.ToString(result.AutomationExecutionId), nil
}
