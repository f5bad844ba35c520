package mapping

import (
	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/models"
)

// ToModelContribution converts a domain Contribution to a model Contribution
func ToModelContribution(d domain.Contribution) models.Contribution {
	return models.Contribution{
		ContributionID: d.ContributionID,
		UserID:         d.UserID,
		BudgetID:       d.BudgetID,
		AccountID:      d.AccountID,
		Amount:         d.Amount,
		Date:           d.Date,
		Method:         d.Method,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainContribution converts a model Contribution to a domain Contribution
func ToDomainContribution(m models.Contribution) domain.Contribution {
	return domain.Contribution{
		ContributionID: m.ContributionID,
		UserID:         m.UserID,
		BudgetID:       m.BudgetID,
		AccountID:      m.AccountID,
		Amount:         m.Amount,
		Date:           m.Date,
		Method:         m.Method,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainContributionSlice converts a slice of model Contributions to a slice of domain Contributions
func ToDomainContributionSlice(ms []models.Contribution) []domain.Contribution {
	ds := make([]domain.Contribution, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContribution(m)
	}
	return ds
}

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:  d.BudgetID,
		UserID:    d.UserID,
		Category:  d.Category,
		Amount:    d.Amount,
		Period:    d.Period,
		Type:      models.BudgetType(d.Type),
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:  m.BudgetID,
		UserID:    m.UserID,
		Category:  m.Category,
		Amount:    m.Amount,
		Period:    m.Period,
		Type:      domain.BudgetType(m.Type),
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
