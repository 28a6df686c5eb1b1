// internal/account/service_test.go
package account

import (
	"context"
	"testing"
	"time"

	"spending-tracker/internal/auth"
	"spending-tracker/internal/config"
	"spending-tracker/internal/domain"
	"spending-tracker/internal/storage/sqlite"

	"github.com/stretchr/testify/suite"
)

const strongPassword = "Correct-Horse-42"

type AccountSuite struct {
	suite.Suite
	ctx    context.Context
	store  *sqlite.Storage
	tokens *auth.TokenService
	svc    *Service
}

func (s *AccountSuite) SetupTest() {
	s.ctx = context.Background()
	store, err := sqlite.Open(s.ctx, ":memory:")
	s.Require().NoError(err)
	s.store = store
	s.tokens = auth.NewTokenService(config.Config{
		JWTSecret:     "account-suite-secret-value",
		JWTAccessTTL:  5 * time.Minute,
		JWTRefreshTTL: time.Hour,
	})
	s.svc = NewService(store, s.tokens, 10*time.Minute)
}

func (s *AccountSuite) TearDownTest() {
	s.store.Close()
}

func (s *AccountSuite) register(email string) *Session {
	sess, err := s.svc.Register(s.ctx, RegisterInput{
		Email:           email,
		FirstName:       "Jane",
		LastName:        "Doe",
		Password:        strongPassword,
		ConfirmPassword: strongPassword,
	})
	s.Require().NoError(err)
	return sess
}

func (s *AccountSuite) TestRegisterIssuesTokens() {
	sess := s.register("Jane@Example.com")
	s.Equal("jane@example.com", sess.User.Email)
	s.Len(sess.User.Username, 30)
	s.NotEqual(strongPassword, sess.User.PasswordHash)

	userID, err := s.tokens.ParseAccessToken(sess.Tokens.Access)
	s.Require().NoError(err)
	s.Equal(sess.User.ID, userID)
}

func (s *AccountSuite) TestRegisterRejectsDuplicateEmail() {
	s.register("jane@example.com")
	_, err := s.svc.Register(s.ctx, RegisterInput{
		Email: "JANE@example.com", Password: strongPassword, ConfirmPassword: strongPassword,
	})
	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "email")
}

func (s *AccountSuite) TestRegisterPasswordRules() {
	_, err := s.svc.Register(s.ctx, RegisterInput{
		Email: "jane@example.com", Password: "12345678", ConfirmPassword: "87654321",
	})
	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields["password"], "Passwords do not match.")
	s.Contains(verr.Fields["password"], "This password is entirely numeric.")
}

func (s *AccountSuite) TestLogin() {
	s.register("jane@example.com")

	sess, err := s.svc.Login(s.ctx, " JANE@example.com ", strongPassword)
	s.Require().NoError(err)
	s.NotEmpty(sess.Tokens.Refresh)

	_, err = s.svc.Login(s.ctx, "jane@example.com", "wrong-password")
	s.ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.svc.Login(s.ctx, "nobody@example.com", strongPassword)
	s.ErrorIs(err, domain.ErrInvalidCredentials)
}

func (s *AccountSuite) TestRefreshAndLogout() {
	sess := s.register("jane@example.com")
	p := domain.Principal{UserID: sess.User.ID}

	access, err := s.svc.Refresh(s.ctx, sess.Tokens.Refresh)
	s.Require().NoError(err)
	s.NotEmpty(access)

	_, err = s.svc.Refresh(s.ctx, sess.Tokens.Access)
	s.ErrorIs(err, domain.ErrInvalidToken)

	s.Require().NoError(s.svc.Logout(s.ctx, p, sess.Tokens.Refresh))
	_, err = s.svc.Refresh(s.ctx, sess.Tokens.Refresh)
	s.ErrorIs(err, domain.ErrTokenBlacklisted)

	// logging out twice is harmless
	s.NoError(s.svc.Logout(s.ctx, p, sess.Tokens.Refresh))
}

func (s *AccountSuite) TestLogoutRejectsSomeoneElsesToken() {
	jane := s.register("jane@example.com")
	john := s.register("john@example.com")

	err := s.svc.Logout(s.ctx, domain.Principal{UserID: john.User.ID}, jane.Tokens.Refresh)
	s.ErrorIs(err, domain.ErrInvalidToken)

	_, err = s.svc.Refresh(s.ctx, jane.Tokens.Refresh)
	s.NoError(err)
}

func (s *AccountSuite) TestUpdateProfile() {
	sess := s.register("jane@example.com")
	p := domain.Principal{UserID: sess.User.ID}

	last := "Smith"
	u, err := s.svc.UpdateProfile(s.ctx, p, nil, &last)
	s.Require().NoError(err)
	s.Equal("Jane", u.FirstName)
	s.Equal("Smith", u.LastName)
	s.Equal("jane@example.com", u.Email)
}

func (s *AccountSuite) TestChangePassword() {
	sess := s.register("jane@example.com")
	p := domain.Principal{UserID: sess.User.ID}
	const next = "Battery-Staple-77"

	err := s.svc.ChangePassword(s.ctx, p, "wrong", next, next)
	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "old_password")

	err = s.svc.ChangePassword(s.ctx, p, strongPassword, next, next+"x")
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "confirm_password")

	s.Require().NoError(s.svc.ChangePassword(s.ctx, p, strongPassword, next, next))
	_, err = s.svc.Login(s.ctx, "jane@example.com", strongPassword)
	s.ErrorIs(err, domain.ErrInvalidCredentials)
	_, err = s.svc.Login(s.ctx, "jane@example.com", next)
	s.NoError(err)
}

func (s *AccountSuite) TestTelegramLinking() {
	sess := s.register("jane@example.com")
	p := domain.Principal{UserID: sess.User.ID}

	code, expires, err := s.svc.CreateLinkCode(s.ctx, p)
	s.Require().NoError(err)
	s.Len(code, 8)
	s.True(expires.After(time.Now()))

	u, err := s.svc.LinkChat(s.ctx, " "+code+" ", 555)
	s.Require().NoError(err)
	s.Equal(sess.User.ID, u.ID)

	got, err := s.svc.ChatPrincipal(s.ctx, 555)
	s.Require().NoError(err)
	s.Equal(p, got)

	_, err = s.svc.LinkChat(s.ctx, code, 556)
	s.ErrorIs(err, domain.ErrLinkCodeInvalid, "codes are single use")

	s.Require().NoError(s.svc.UnlinkChat(s.ctx, 555))
	_, err = s.svc.ChatPrincipal(s.ctx, 555)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AccountSuite) TestExpiredLinkCode() {
	sess := s.register("jane@example.com")
	code, _, err := s.svc.CreateLinkCode(s.ctx, domain.Principal{UserID: sess.User.ID})
	s.Require().NoError(err)

	s.svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = s.svc.LinkChat(s.ctx, code, 1)
	s.ErrorIs(err, domain.ErrLinkCodeInvalid)
}

func (s *AccountSuite) TestPurgeExpiredTokens() {
	sess := s.register("jane@example.com")
	s.Require().NoError(s.svc.Logout(s.ctx, domain.Principal{UserID: sess.User.ID}, sess.Tokens.Refresh))

	n, err := s.svc.PurgeExpiredTokens(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)

	s.svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err = s.svc.PurgeExpiredTokens(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountSuite))
}
