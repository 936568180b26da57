package service

import (
	"context"
	"strings"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/repository"
)

type partyService struct {
	partyRepo repository.PartyRepository
}

func NewPartyService(partyRepo repository.PartyRepository) PartyService {
	return &partyService{partyRepo: partyRepo}
}

func (s *partyService) CreateParty(ctx context.Context, party *domain.Party) error {
	if err := normalizeParty(party); err != nil {
		return err
	}
	return s.partyRepo.Create(ctx, party)
}

func (s *partyService) GetParty(ctx context.Context, id int64) (*domain.Party, error) {
	return s.partyRepo.GetByID(ctx, id)
}

func (s *partyService) UpdateParty(ctx context.Context, party *domain.Party) error {
	if err := normalizeParty(party); err != nil {
		return err
	}
	return s.partyRepo.Update(ctx, party)
}

func (s *partyService) DeleteParty(ctx context.Context, id int64) error {
	return s.partyRepo.Delete(ctx, id)
}

func (s *partyService) ListParties(ctx context.Context, query string, page, pageSize int32) ([]domain.Party, int64, error) {
	return s.partyRepo.List(ctx, strings.TrimSpace(query), page, pageSize)
}

func normalizeParty(p *domain.Party) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.Contact = strings.TrimSpace(p.Contact)
	p.GSTNumber = strings.ToUpper(strings.TrimSpace(p.GSTNumber))
	if p.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	return nil
}
