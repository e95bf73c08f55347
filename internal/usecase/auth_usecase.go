package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	"health-wheel/internal/converter"
	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/service"
	"health-wheel/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPatientNotFound    = errors.New("patient not found")
)

const passwordHashCost = 12

type AuthUsecase interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.PatientResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error)
	SignOut(ctx context.Context, patientID int64, sessionID string) error
	GetSession(ctx context.Context, patientID int64) (*dto.SessionUser, error)
}

type authUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	jwtService   *jwt.JWTService
	sessions     service.SessionStore
	drafts       *service.DraftRegistry
	auditService service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	sessions service.SessionStore,
	drafts *service.DraftRegistry,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		patientRepo:  patientRepo,
		jwtService:   jwtService,
		sessions:     sessions,
		drafts:       drafts,
		auditService: auditService,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.PatientResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := u.patientRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to check existing patient: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Name:      strings.TrimSpace(req.Name),
		Surname:   strings.TrimSpace(req.Surname),
		Email:     email,
		Password:  hash,
		Birthdate: req.Birthdate,
		City:      strings.TrimSpace(req.City),
		Role:      entity.RoleUser,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, patient.ID, entity.AuditActionPatientRegister, "patient", strconv.FormatInt(patient.ID, 10), converter.PatientToResponse(patient))

	return converter.PatientToResponse(patient), nil
}

func (u *authUsecase) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error) {
	patient, err := u.patientRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(patient.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, sessionID, err := u.jwtService.GenerateSessionToken(patient.ID, patient.Email, patient.Role)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	if err := u.sessions.Save(ctx, patient.ID, sessionID, u.jwtService.GetSessionExpiry()); err != nil {
		u.log.Warnf("Failed to store session in Redis: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, patient.ID, entity.AuditActionPatientLogin, "session", sessionID, nil)

	return &dto.SessionResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetSessionExpiry().Seconds()),
		User:      converter.PatientToSessionUser(patient),
	}, nil
}

// SignOut revokes the session and tears its survey draft down.
func (u *authUsecase) SignOut(ctx context.Context, patientID int64, sessionID string) error {
	if err := u.sessions.Revoke(ctx, patientID, sessionID); err != nil {
		u.log.Warnf("Failed to revoke session: %+v", err)
		return err
	}
	u.drafts.Discard(sessionID)

	u.auditService.LogDelete(ctx, patientID, entity.AuditActionPatientLogout, "session", sessionID, nil)
	return nil
}

func (u *authUsecase) GetSession(ctx context.Context, patientID int64) (*dto.SessionUser, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	user := converter.PatientToSessionUser(patient)
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword returns the bcrypt hash base64 encoded, the form the record
// store keeps in its text column.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

// checkPassword accepts both base64 encoded and raw bcrypt hashes.
func checkPassword(stored, password string) bool {
	hash := []byte(stored)
	if !strings.HasPrefix(stored, "$2") {
		decoded, err := base64.StdEncoding.DecodeString(stored)
		if err != nil {
			return false
		}
		hash = decoded
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
