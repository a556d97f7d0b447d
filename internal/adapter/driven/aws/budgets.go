package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// BudgetsAPI is the subset of the Budgets client used here.
type BudgetsAPI interface {
	DescribeBudget(ctx context.Context, params *budgets.DescribeBudgetInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetOutput, error)
}

// STSAPI resolves the caller account.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// BudgetsRepository implements repository.BudgetRepository.
type BudgetsRepository struct {
	budgets   BudgetsAPI
	sts       STSAPI
	accountID string
	mu        sync.Mutex
}

// NewBudgetsRepository wraps the Budgets and STS clients.
func NewBudgetsRepository(budgetsClient BudgetsAPI, stsClient STSAPI) *BudgetsRepository {
	return &BudgetsRepository{budgets: budgetsClient, sts: stsClient}
}

// GetAccountID returns the caller account, resolved once.
func (r *BudgetsRepository) GetAccountID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.accountID != "" {
		return r.accountID, nil
	}

	result, err := r.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %w", err)
	}
	r.accountID = aws.ToString(result.Account)
	return r.accountID, nil
}

// DescribeBudget returns limit, actual and forecast spend of the named budget.
func (r *BudgetsRepository) DescribeBudget(ctx context.Context, name string) (entity.BudgetInfo, error) {
	accountID, err := r.GetAccountID(ctx)
	if err != nil {
		return entity.BudgetInfo{}, err
	}

	result, err := r.budgets.DescribeBudget(ctx, &budgets.DescribeBudgetInput{
		AccountId:  aws.String(accountID),
		BudgetName: aws.String(name),
	})
	if err != nil {
		return entity.BudgetInfo{}, fmt.Errorf("error describing budget %s: %w", name, err)
	}
	if result.Budget == nil {
		return entity.BudgetInfo{}, fmt.Errorf("budget %s not returned", name)
	}

	budget := result.Budget
	info := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
	if budget.BudgetLimit != nil {
		info.Limit = parseAmount(budget.BudgetLimit.Amount)
	}
	if budget.CalculatedSpend != nil {
		if budget.CalculatedSpend.ActualSpend != nil {
			info.Actual = parseAmount(budget.CalculatedSpend.ActualSpend.Amount)
		}
		if budget.CalculatedSpend.ForecastedSpend != nil {
			forecast := parseAmount(budget.CalculatedSpend.ForecastedSpend.Amount)
			info.Forecast = &forecast
		}
	}
	return info, nil
}
