package service

import (
	"context"
	"fmt"
	"strings"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/logger"
	"servigo-backend/internal/repository"
)

type offerService struct {
	repos repository.Repos
	tx    repository.Transactor
}

func NewOfferService(repos repository.Repos, tx repository.Transactor) OfferService {
	return &offerService{repos: repos, tx: tx}
}

func (s *offerService) CreateOffer(ctx context.Context, professionalID, serviceID, clientID int32, amountCents int64, description string) (*domain.ServiceOffer, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: offer amount must be positive", ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: offer description is required", ErrValidation)
	}

	professional, err := s.repos.Users.GetByID(ctx, professionalID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if professional.UserType != domain.UserTypeProvider {
		return nil, fmt.Errorf("%w: only providers can make offers", ErrForbidden)
	}
	// Unverified providers are gated out of the marketplace.
	if !professional.IsVerified() {
		return nil, ErrNotVerified
	}

	offer := &domain.ServiceOffer{
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		ClientID:       clientID,
		AmountCents:    amountCents,
		Description:    description,
		Status:         domain.OfferStatusPending,
	}
	if err := s.repos.Offers.Create(ctx, offer); err != nil {
		return nil, mapRepoError(err)
	}
	return offer, nil
}

func (s *offerService) GetOffer(ctx context.Context, id int32) (*domain.ServiceOffer, error) {
	offer, err := s.repos.Offers.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return offer, nil
}

func (s *offerService) ListOffersByService(ctx context.Context, serviceID int32) ([]domain.ServiceOffer, error) {
	return s.repos.Offers.ListByService(ctx, serviceID)
}

func (s *offerService) ListMyOffers(ctx context.Context, professionalID int32) ([]domain.ServiceOffer, error) {
	return s.repos.Offers.ListByProfessional(ctx, professionalID)
}

// AcceptOffer accepts one offer and rejects its pending siblings on the same
// service in a single transaction, then notifies the professional.
func (s *offerService) AcceptOffer(ctx context.Context, clientID, offerID int32) (*domain.ServiceOffer, error) {
	return s.resolve(ctx, clientID, offerID, domain.OfferStatusAccepted)
}

func (s *offerService) RejectOffer(ctx context.Context, clientID, offerID int32) (*domain.ServiceOffer, error) {
	return s.resolve(ctx, clientID, offerID, domain.OfferStatusRejected)
}

func (s *offerService) CancelOffer(ctx context.Context, professionalID, offerID int32) (*domain.ServiceOffer, error) {
	offer, err := s.repos.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if offer.ProfessionalID != professionalID {
		return nil, ErrForbidden
	}
	updated, err := s.repos.Offers.UpdateStatus(ctx, offerID, domain.OfferStatusCancelled)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return updated, nil
}

func (s *offerService) resolve(ctx context.Context, clientID, offerID int32, to domain.OfferStatus) (*domain.ServiceOffer, error) {
	logger.EnterMethod("offerService.resolve", "offerID", offerID, "to", to)

	offer, err := s.repos.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if offer.ClientID != clientID {
		return nil, ErrForbidden
	}

	var (
		updated *domain.ServiceOffer
		note    domain.Notification
	)
	switch to {
	case domain.OfferStatusAccepted:
		note = domain.Notification{
			UserID: offer.ProfessionalID,
			Kind:   domain.NotificationOfferAccepted,
			Title:  "Your offer was accepted",
			Body:   fmt.Sprintf("Your offer #%d was accepted by the client.", offer.ID),
		}
	case domain.OfferStatusRejected:
		note = domain.Notification{
			UserID: offer.ProfessionalID,
			Kind:   domain.NotificationOfferRejected,
			Title:  "Your offer was rejected",
			Body:   fmt.Sprintf("Your offer #%d was rejected by the client.", offer.ID),
		}
	default:
		return nil, fmt.Errorf("%w: offers resolve to accepted or rejected, got %q", ErrValidation, to)
	}

	err = s.tx.Transact(ctx, func(r repository.Repos) error {
		o, err := r.Offers.UpdateStatus(ctx, offerID, to)
		if err != nil {
			return err
		}
		if to == domain.OfferStatusAccepted {
			if err := r.Offers.RejectSiblings(ctx, o.ServiceID, o.ID); err != nil {
				return fmt.Errorf("failed to reject sibling offers: %w", err)
			}
		}
		if err := r.Notifications.Create(ctx, &note); err != nil {
			return fmt.Errorf("failed to enqueue notification: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("offerService.resolve", err, "offerID", offerID)
		return nil, mapRepoError(err)
	}

	logger.ExitMethod("offerService.resolve", "offerID", offerID, "status", updated.Status)
	return updated, nil
}
