package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chamroeun/posledger/internal/domain"
)

const (
	accountIndexCacheKey = "accounts:index"
	accountIndexCacheTTL = 5 * time.Minute
)

// AccountUseCase serves the chart of accounts and the name-to-account index
// posting relies on. The chart is static after seeding, so the index is
// cached; a cache failure falls back to the repository.
type AccountUseCase struct {
	accountRepo AccountRepository
	cache       Cache
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(accountRepo AccountRepository, cache Cache) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		cache:       cache,
	}
}

// List returns the full chart of accounts.
func (uc *AccountUseCase) List(ctx context.Context) ([]*domain.FinancialAccount, error) {
	return uc.accountRepo.List(ctx)
}

// GetByName returns one account by its chart name.
func (uc *AccountUseCase) GetByName(ctx context.Context, name string) (*domain.FinancialAccount, error) {
	return uc.accountRepo.GetByName(ctx, name)
}

// Index returns the name-to-account index, from cache when possible.
func (uc *AccountUseCase) Index(ctx context.Context) (*domain.AccountIndex, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, accountIndexCacheKey); err == nil {
			var accounts []*domain.FinancialAccount
			if err := json.Unmarshal(data, &accounts); err == nil && len(accounts) > 0 {
				return domain.NewAccountIndex(accounts), nil
			}
		}
	}

	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(accounts); err == nil {
			_ = uc.cache.Set(ctx, accountIndexCacheKey, data, accountIndexCacheTTL)
		}
	}

	return domain.NewAccountIndex(accounts), nil
}
