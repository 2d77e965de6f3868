package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
	"github.com/shopspring/decimal"
)

var (
	clientNamePattern  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	clientEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type ClientService struct {
	repos *repository.Repositories
}

func NewClientService(repos *repository.Repositories) *ClientService {
	return &ClientService{repos: repos}
}

type CreateClientRequest struct {
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`
	ClientCity    string `json:"client_city"`
	ClientState   string `json:"client_state"`
	ClientZip     string `json:"client_zip"`
	ClientCountry string `json:"client_country"`
}

func (s *ClientService) Create(ctx context.Context, userID string, req *CreateClientRequest) (*entity.Client, error) {
	name := strings.TrimSpace(req.ClientName)
	email := strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if name == "" || email == "" {
		return nil, Validation("Client name and email are required")
	}
	if len([]rune(name)) > 100 {
		return nil, Validation("Client name cannot be longer than 100 characters")
	}
	if !clientNamePattern.MatchString(name) {
		return nil, Validation("Client name can only contain letters, spaces, hyphens, and apostrophes")
	}
	if !clientEmailPattern.MatchString(email) {
		return nil, Validation("Please enter a valid email address")
	}
	if _, err := s.repos.Client.FindByEmail(ctx, email); err == nil {
		return nil, Validation("Client already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Persistence(err)
	}

	client := &entity.Client{
		ID:            uuid.New().String(),
		ClientName:    name,
		ClientEmail:   email,
		ClientPhone:   strings.TrimSpace(req.ClientPhone),
		ClientAddress: strings.TrimSpace(req.ClientAddress),
		ClientCity:    strings.TrimSpace(req.ClientCity),
		ClientState:   strings.TrimSpace(req.ClientState),
		ClientZip:     strings.TrimSpace(req.ClientZip),
		ClientCountry: strings.TrimSpace(req.ClientCountry),
		TotalRevenue:  decimal.Zero,
		CreatedBy:     userID,
	}
	if err := s.repos.Client.Create(ctx, client); err != nil {
		if repository.IsDuplicate(err) {
			return nil, Validation("Client already exists")
		}
		return nil, Persistence(err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Client, int64, error) {
	items, total, err := s.repos.Client.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, Persistence(err)
	}
	return items, total, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*entity.Client, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid client id")
	}
	client, err := s.repos.Client.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Client not found")
	}
	return client, nil
}
