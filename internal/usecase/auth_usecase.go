package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio/internal/domain/model"
	"portfolio/internal/identity"
	repo "portfolio/internal/repository"

	"github.com/sirupsen/logrus"
)

type AuthUsecase struct {
	users    repo.UserRepository
	roles    repo.RoleRepository
	provider identity.Provider
	log      *logrus.Logger
}

// DI
func NewAuthUsecase(
	users repo.UserRepository,
	roles repo.RoleRepository,
	provider identity.Provider,
	log *logrus.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		roles:    roles,
		provider: provider,
		log:      log,
	}
}

type SignUpInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type TokenOutput struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthOutput struct {
	User  model.User  `json:"user"`
	Token TokenOutput `json:"token"`
}

// SignUp はIdPにアカウントを作り、ローカルユーザーも作成する。
func (u *AuthUsecase) SignUp(ctx context.Context, in SignUpInput) (model.User, error) {
	account, err := u.provider.SignUp(ctx, identity.SignUpInput{
		Email:     strings.TrimSpace(in.Email),
		Username:  strings.TrimSpace(in.Username),
		Password:  in.Password,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	})
	if errors.Is(err, identity.ErrAccountExists) {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already registered")
	}
	if err != nil {
		u.log.WithError(err).Error("identity provider signup failed")
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user, err := u.createLocalUser(ctx, account)
	if err != nil {
		// IdP側の作成は成功している。補償はせず、次回ログイン時の遅延作成に任せる。
		u.log.WithError(err).WithField("sub", account.Subject).Error("local user create failed after signup")
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return *user, nil
}

// Login はIdPで認証し、ローカルユーザーを（なければ作って）返す。
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (AuthOutput, error) {
	tokens, account, err := u.provider.Authenticate(ctx, strings.TrimSpace(email), password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		u.log.WithError(err).Error("identity provider auth failed")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user, err := u.ResolveIdentity(ctx, account, true)
	if err != nil {
		u.log.WithError(err).WithField("sub", account.Subject).Error("identity resolve failed")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := time.Now()
	if err := u.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		u.log.WithError(err).WithField("user_id", user.ID).Warn("last login update failed")
	}
	user.LastLoginAt = &now

	return AuthOutput{
		User: *user,
		Token: TokenOutput{
			IDToken:      tokens.IDToken,
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresIn:    tokens.ExpiresIn,
		},
	}, nil
}

// ResolveIdentity はsubをローカルユーザーに引き当てる。
// サインインフローではIdPが保証した情報からレコードを遅延作成する。
// 先にsub検索が走るので2回呼んでも2行にはならない。
func (u *AuthUsecase) ResolveIdentity(ctx context.Context, account identity.Account, createIfMissing bool) (*model.User, error) {
	user, err := u.users.FindByExternalID(ctx, account.Subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	if !createIfMissing {
		return nil, repo.ErrNotFound
	}

	return u.createLocalUser(ctx, account)
}

// createLocalUser はデフォルトロールでローカルユーザーを作る。
func (u *AuthUsecase) createLocalUser(ctx context.Context, account identity.Account) (*model.User, error) {
	role, err := u.roles.FindByName(ctx, model.RoleNameUser)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ExternalID: account.Subject,
		Email:      account.Email,
		Username:   account.Username,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		RoleID:     role.ID,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile はsubから自分のプロフィールを返す。
func (u *AuthUsecase) GetProfile(ctx context.Context, subject string) (model.User, error) {
	user, err := u.users.FindByExternalID(ctx, subject)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return model.User{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return *user, nil
}

type UpdateProfileInput struct {
	Username    string
	FirstName   string
	LastName    string
	SocialLinks []model.SocialLink
}

// UpdateProfile はローカルとIdPの両方へ反映する。
func (u *AuthUsecase) UpdateProfile(ctx context.Context, subject string, in UpdateProfileInput) (model.User, error) {
	user, err := u.users.FindByExternalID(ctx, subject)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return model.User{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if username := strings.TrimSpace(in.Username); username != "" {
		user.Username = username
	}
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)

	if in.SocialLinks != nil {
		links := make([]model.SocialLink, 0, len(in.SocialLinks))
		for _, l := range in.SocialLinks {
			links = append(links, model.SocialLink{
				UserID:     user.ID,
				Provider:   strings.TrimSpace(l.Provider),
				ProfileURL: strings.TrimSpace(l.ProfileURL),
			})
		}
		user.SocialLinks = links
	}

	if err := u.users.Update(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//IdP側の氏名属性も更新
	if err := u.provider.UpdateAttributes(ctx, user.Email, user.FirstName, user.LastName); err != nil {
		u.log.WithError(err).WithField("user_id", user.ID).Error("identity provider attribute update failed")
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return *user, nil
}
