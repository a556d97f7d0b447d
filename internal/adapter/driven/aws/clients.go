package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexlux58/AWS-ALERTING/pkg/version"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Cost Explorer and Budgets only answer in us-east-1.
const globalBillingRegion = "us-east-1"

// ClientProvider carrega a configuração AWS uma única vez e mantém um cache de clientes.
// Lambda containers reuse it across invocations; it holds no report state.
type ClientProvider struct {
	profile     string
	sesRegion   string
	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewClientProvider creates a provider. An empty profile uses the default credential chain.
func NewClientProvider(profile, sesRegion string) *ClientProvider {
	return &ClientProvider{
		profile:     profile,
		sesRegion:   sesRegion,
		clientCache: make(map[string]interface{}),
	}
}

func (p *ClientProvider) getAWSConfig(ctx context.Context) (aws.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cfg != nil {
		return *p.cfg, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithAppID(version.AppID())}
	if p.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(p.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	p.cfg = &cfg
	return cfg, nil
}

func (p *ClientProvider) getServiceClient(ctx context.Context, service string) (interface{}, error) {
	p.mu.Lock()
	if client, ok := p.clientCache[service]; ok {
		p.mu.Unlock()
		return client, nil
	}
	p.mu.Unlock()

	cfg, err := p.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "ec2":
		client = ec2.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	case "ssm":
		client = ssm.NewFromConfig(regionalCfg)
	case "cloudwatch":
		client = cloudwatch.NewFromConfig(regionalCfg)
	case "ses":
		if p.sesRegion != "" {
			regionalCfg.Region = p.sesRegion
		}
		client = ses.NewFromConfig(regionalCfg)
	case "costexplorer":
		regionalCfg.Region = globalBillingRegion
		client = costexplorer.NewFromConfig(regionalCfg)
	case "budgets":
		regionalCfg.Region = globalBillingRegion
		client = budgets.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	p.mu.Lock()
	p.clientCache[service] = client
	p.mu.Unlock()

	return client, nil
}

// CostRepository builds the Cost Explorer adapter.
func (p *ClientProvider) CostRepository(ctx context.Context) (*CostExplorerRepository, error) {
	client, err := p.getServiceClient(ctx, "costexplorer")
	if err != nil {
		return nil, err
	}
	return NewCostExplorerRepository(client.(*costexplorer.Client)), nil
}

// BudgetRepository builds the Budgets adapter.
func (p *ClientProvider) BudgetRepository(ctx context.Context) (*BudgetsRepository, error) {
	budgetsClient, err := p.getServiceClient(ctx, "budgets")
	if err != nil {
		return nil, err
	}
	stsClient, err := p.getServiceClient(ctx, "sts")
	if err != nil {
		return nil, err
	}
	return NewBudgetsRepository(budgetsClient.(*budgets.Client), stsClient.(*sts.Client)), nil
}

// SSMRepository builds the parameter store and automation adapter.
func (p *ClientProvider) SSMRepository(ctx context.Context) (*SSMRepository, error) {
	client, err := p.getServiceClient(ctx, "ssm")
	if err != nil {
		return nil, err
	}
	return NewSSMRepository(client.(*ssm.Client)), nil
}

// ArchiveRepository builds the S3 adapter.
func (p *ClientProvider) ArchiveRepository(ctx context.Context) (*S3Repository, error) {
	client, err := p.getServiceClient(ctx, "s3")
	if err != nil {
		return nil, err
	}
	return NewS3Repository(client.(*s3.Client)), nil
}

// MailRepository builds the SES adapter.
func (p *ClientProvider) MailRepository(ctx context.Context) (*SESRepository, error) {
	client, err := p.getServiceClient(ctx, "ses")
	if err != nil {
		return nil, err
	}
	return NewSESRepository(client.(*ses.Client)), nil
}

// MetricsRepository builds the CloudWatch adapter.
func (p *ClientProvider) MetricsRepository(ctx context.Context, namespace string, enabled bool) (*CloudWatchRepository, error) {
	client, err := p.getServiceClient(ctx, "cloudwatch")
	if err != nil {
		return nil, err
	}
	return NewCloudWatchRepository(client.(*cloudwatch.Client), namespace, enabled), nil
}

// InstanceRepository builds the EC2 adapter.
func (p *ClientProvider) InstanceRepository(ctx context.Context) (*EC2Repository, error) {
	client, err := p.getServiceClient(ctx, "ec2")
	if err != nil {
		return nil, err
	}
	return NewEC2Repository(client.(*ec2.Client)), nil
}
