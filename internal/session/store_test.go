package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/taskbloom/taskbloom/internal/apitest"
	"github.com/taskbloom/taskbloom/internal/factory"
)

type StoreSuite struct {
	suite.Suite
	server *apitest.Server
	app    *factory.TestApp
	ctx    context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.server = apitest.New()
	s.app = factory.NewTestApp(s.server.URL())
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	s.server.Close()
}

// Start tests

func (s *StoreSuite) TestStartWithNoTokenSettlesUnauthenticated() {
	s.app.Session.Start(s.ctx)

	s.False(s.app.Session.Loading())
	s.False(s.app.Session.IsAuthenticated())
	s.Equal(0, s.server.Calls(apitest.CallMe))
}

func (s *StoreSuite) TestStartWithPersistedTokenResolvesUser() {
	s.server.IssueToken("tok-persisted")
	s.Require().NoError(s.app.Tokens.Save("tok-persisted"))

	s.app.Session.Start(s.ctx)

	s.False(s.app.Session.Loading())
	s.True(s.app.Session.IsAuthenticated())
	s.Require().NotNil(s.app.Session.User())
	s.Equal("flora", s.app.Session.User().Username)
	s.Equal("tok-persisted", s.app.Session.Token())
	s.Equal(1, s.server.Calls(apitest.CallMe))
}

func (s *StoreSuite) TestStartWithStaleTokenLogsOut() {
	// Token is persisted locally but the server no longer recognizes it
	s.Require().NoError(s.app.Tokens.Save("tok-stale"))

	s.app.Session.Start(s.ctx)

	s.False(s.app.Session.Loading())
	s.False(s.app.Session.IsAuthenticated())
	s.Empty(s.app.Session.Token())

	// The stale token is erased, not retried on the next start
	persisted, err := s.app.Tokens.Load()
	s.Require().NoError(err)
	s.Empty(persisted)
}

// Login tests

func (s *StoreSuite) TestLoginSucceeds() {
	s.app.Session.Start(s.ctx)

	result := s.app.Session.Login(s.ctx, "flora@example.com", "petals123")
	s.Require().True(result.Success)

	s.True(s.app.Session.IsAuthenticated())
	s.Require().NotNil(s.app.Session.User())
	s.Equal("flora@example.com", s.app.Session.User().Email)
	s.Equal(s.server.Token(), s.app.Session.Token())
}

func (s *StoreSuite) TestLoginPersistsToken() {
	s.app.Session.Start(s.ctx)

	result := s.app.Session.Login(s.ctx, "flora@example.com", "petals123")
	s.Require().True(result.Success)

	persisted, err := s.app.Tokens.Load()
	s.Require().NoError(err)
	s.Equal(s.server.Token(), persisted)
}

func (s *StoreSuite) TestLoginFailureLeavesStateUntouched() {
	s.app.Session.Start(s.ctx)

	result := s.app.Session.Login(s.ctx, "flora@example.com", "wrong")
	s.False(result.Success)
	s.Equal("Invalid email or password", result.Message)

	s.False(s.app.Session.IsAuthenticated())
	s.Empty(s.app.Session.Token())

	persisted, err := s.app.Tokens.Load()
	s.Require().NoError(err)
	s.Empty(persisted)
}

// Register tests

func (s *StoreSuite) TestRegisterSucceeds() {
	s.app.Session.Start(s.ctx)

	result := s.app.Session.Register(s.ctx, "ivy", "ivy@example.com", "trellis42")
	s.Require().True(result.Success)

	s.True(s.app.Session.IsAuthenticated())
	s.Require().NotNil(s.app.Session.User())
	s.Equal("ivy", s.app.Session.User().Username)
	s.Equal(s.server.Token(), s.app.Session.Token())
}

func (s *StoreSuite) TestRegisterDuplicateEmailFails() {
	s.app.Session.Start(s.ctx)

	result := s.app.Session.Register(s.ctx, "flora2", "flora@example.com", "petals456")
	s.False(result.Success)
	s.Equal("Email already registered", result.Message)
	s.False(s.app.Session.IsAuthenticated())
}

// Logout tests

func (s *StoreSuite) TestLogoutClearsSession() {
	s.app.Session.Start(s.ctx)
	s.Require().True(s.app.Session.Login(s.ctx, "flora@example.com", "petals123").Success)

	s.app.Session.Logout()

	s.False(s.app.Session.IsAuthenticated())
	s.Nil(s.app.Session.User())
	s.Empty(s.app.Session.Token())

	persisted, err := s.app.Tokens.Load()
	s.Require().NoError(err)
	s.Empty(persisted)
}

func (s *StoreSuite) TestLogoutIsIdempotent() {
	s.app.Session.Start(s.ctx)
	s.Require().True(s.app.Session.Login(s.ctx, "flora@example.com", "petals123").Success)

	notifications := 0
	s.app.Session.Subscribe(func() { notifications++ })

	s.app.Session.Logout()
	s.Equal(1, notifications)

	s.app.Session.Logout()
	s.app.Session.Logout()
	s.Equal(1, notifications, "repeat logouts must not re-notify")
	s.False(s.app.Session.IsAuthenticated())
}

// Session invalidation

func (s *StoreSuite) TestUnauthorizedResponseForcesLogout() {
	s.app.Session.Start(s.ctx)
	s.Require().True(s.app.Session.Login(s.ctx, "flora@example.com", "petals123").Success)

	s.server.RevokeToken()

	// Any authenticated call observing a 401 invalidates the session
	_, err := s.app.Tasks.Fetch(s.ctx)
	s.Require().Error(err)

	s.False(s.app.Session.IsAuthenticated())
	s.Empty(s.app.Session.Token())

	persisted, loadErr := s.app.Tokens.Load()
	s.Require().NoError(loadErr)
	s.Empty(persisted)
}

// Subscription tests

func (s *StoreSuite) TestSubscribersNotifiedOnAuthChanges() {
	notifications := 0
	s.app.Session.Subscribe(func() { notifications++ })

	s.app.Session.Start(s.ctx)
	s.Equal(1, notifications, "initial resolution notifies")

	s.Require().True(s.app.Session.Login(s.ctx, "flora@example.com", "petals123").Success)
	s.Equal(2, notifications, "login notifies")

	s.app.Session.Logout()
	s.Equal(3, notifications, "logout notifies")
}
