package usecase

import (
	"context"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
)

// SweepUseCase — ежедневная уборка: деактивация истёкших акций и удаление
// просроченных токенов сброса пароля. Каждый проход идемпотентен: повторный
// запуск без изменений данных ничего не находит.
type SweepUseCase struct {
	promotionRepo PromotionRepository
	tokenRepo     TokenRepository
	dbPool        transaction.Transactional
	logger        logger.Logger
	now           func() time.Time
}

func NewSweepUC(
	promotionRepo PromotionRepository,
	tokenRepo TokenRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *SweepUseCase {
	return &SweepUseCase{
		promotionRepo: promotionRepo,
		tokenRepo:     tokenRepo,
		dbPool:        dbPool,
		logger:        logger,
		now:           time.Now,
	}
}

// RunOnce выполняет один проход уборки. Ошибка обработки отдельной акции
// логируется и не прерывает обработку остальных: кандидаты перечитываются
// из хранилища, а не из ранее снятого среза.
func (s *SweepUseCase) RunOnce(ctx context.Context) (*SweepReport, error) {
	const op = "SweepUseCase.RunOnce"

	now := s.now()
	report := &SweepReport{PromotionsDeactivated: make([]int64, 0)}

	promotions, err := s.promotionRepo.ExpiredActive(ctx, now)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	for _, promotion := range promotions {
		if err := s.deactivatePromotion(ctx, promotion.ID); err != nil {
			s.logger.Warnf("failed to deactivate expired promotion %d: %v", promotion.ID, e.Wrap(op, err))
			continue
		}
		report.PromotionsDeactivated = append(report.PromotionsDeactivated, promotion.ID)
	}

	purged, err := s.tokenRepo.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Warnf("failed to purge expired reset tokens: %v", e.Wrap(op, err))
	}
	report.TokensPurged = purged

	return report, nil
}

// deactivatePromotion удаляет привязки акции и гасит её флаг активности
// одной транзакцией на запись.
func (s *SweepUseCase) deactivatePromotion(ctx context.Context, promotionID int64) error {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if _, err = s.promotionRepo.DeleteLinks(ctx, promotionID); err != nil {
		return err
	}

	if err = s.promotionRepo.Deactivate(ctx, promotionID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
