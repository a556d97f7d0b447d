package aws

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

var errThrottled = errors.New("ThrottlingException: Rate exceeded")

// mockCostExplorer returns pages in order and records every input.
type mockCostExplorer struct {
	Pages       []*costexplorer.GetCostAndUsageOutput
	Forecast    *costexplorer.GetCostForecastOutput
	Err         error
	ForecastErr error

	Inputs         []costexplorer.GetCostAndUsageInput
	ForecastInputs []costexplorer.GetCostForecastInput
}

func (m *mockCostExplorer) GetCostAndUsage(_ context.Context, params *costexplorer.GetCostAndUsageInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	m.Inputs = append(m.Inputs, *params)
	if m.Err != nil {
		return nil, m.Err
	}
	page := m.Pages[len(m.Inputs)-1]
	return page, nil
}

func (m *mockCostExplorer) GetCostForecast(_ context.Context, params *costexplorer.GetCostForecastInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error) {
	m.ForecastInputs = append(m.ForecastInputs, *params)
	if m.ForecastErr != nil {
		return nil, m.ForecastErr
	}
	return m.Forecast, nil
}

type mockBudgets struct {
	Output *budgets.DescribeBudgetOutput
	Err    error
	Inputs []budgets.DescribeBudgetInput
}

func (m *mockBudgets) DescribeBudget(_ context.Context, params *budgets.DescribeBudgetInput, _ ...func(*budgets.Options)) (*budgets.DescribeBudgetOutput, error) {
	m.Inputs = append(m.Inputs, *params)
	return m.Output, m.Err
}

type mockSTS struct {
	Account string
	Err     error
	Calls   int
}

func (m *mockSTS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return &sts.GetCallerIdentityOutput{Account: &m.Account}, nil
}

type mockSSM struct {
	Store         map[string]string
	GetErr        error
	ExecutionID   string
	AutomationErr error

	GetInputs        []ssm.GetParametersInput
	AutomationInputs []ssm.StartAutomationExecutionInput
}

func (m *mockSSM) GetParameters(_ context.Context, params *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	m.GetInputs = append(m.GetInputs, *params)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	out := &ssm.GetParametersOutput{}
	for _, name := range params.Names {
		value, ok := m.Store[name]
		if !ok {
			out.InvalidParameters = append(out.InvalidParameters, name)
			continue
		}
		out.Parameters = append(out.Parameters, ssmParameter(name, value))
	}
	return out, nil
}

func (m *mockSSM) StartAutomationExecution(_ context.Context, params *ssm.StartAutomationExecutionInput, _ ...func(*ssm.Options)) (*ssm.StartAutomationExecutionOutput, error) {
	m.AutomationInputs = append(m.AutomationInputs, *params)
	if m.AutomationErr != nil {
		return nil, m.AutomationErr
	}
	return &ssm.StartAutomationExecutionOutput{AutomationExecutionId: &m.ExecutionID}, nil
}

type mockS3 struct {
	Err    error
	Inputs []s3.PutObjectInput
}

func (m *mockS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.Inputs = append(m.Inputs, *params)
	if m.Err != nil {
		return nil, m.Err
	}
	return &s3.PutObjectOutput{}, nil
}

type mockSES struct {
	MessageID string
	Err       error
	Inputs    []ses.SendEmailInput
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.Inputs = append(m.Inputs, *params)
	if m.Err != nil {
		return nil, m.Err
	}
	return &ses.SendEmailOutput{MessageId: &m.MessageID}, nil
}

type mockCloudWatch struct {
	Err    error
	Inputs []cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.Inputs = append(m.Inputs, *params)
	if m.Err != nil {
		return nil, m.Err
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

type mockEC2 struct {
	Pages  []*ec2.DescribeInstancesOutput
	Err    error
	Inputs []ec2.DescribeInstancesInput
}

func (m *mockEC2) DescribeInstances(_ context.Context, params *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	m.Inputs = append(m.Inputs, *params)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pages[len(m.Inputs)-1], nil
}
