package identity

import (
	"context"
	"errors"

	"portfolio/internal/identity"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
)

// CognitoProvider はAWS Cognitoの管理APIで identity.Provider を満たす。
// プール内のusernameにはemailをそのまま使う。
type CognitoProvider struct {
	client     *cognitoidentityprovider.CognitoIdentityProvider
	userPoolID string
	clientID   string
}

// DI
func NewCognitoProvider(region string, userPoolID string, clientID string) (*CognitoProvider, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}

	return &CognitoProvider{
		client:     cognitoidentityprovider.New(sess),
		userPoolID: userPoolID,
		clientID:   clientID,
	}, nil
}

var _ identity.Provider = (*CognitoProvider)(nil)

// SignUp はユーザー作成→パスワード確定（＝確認済み化）→subの取得まで行う。
func (p *CognitoProvider) SignUp(ctx context.Context, in identity.SignUpInput) (identity.Account, error) {
	attrs := []*cognitoidentityprovider.AttributeType{
		{Name: aws.String("email"), Value: aws.String(in.Email)},
		{Name: aws.String("email_verified"), Value: aws.String("true")},
	}
	if in.Username != "" {
		attrs = append(attrs, &cognitoidentityprovider.AttributeType{
			Name: aws.String("preferred_username"), Value: aws.String(in.Username),
		})
	}
	if in.FirstName != "" {
		attrs = append(attrs, &cognitoidentityprovider.AttributeType{
			Name: aws.String("given_name"), Value: aws.String(in.FirstName),
		})
	}
	if in.LastName != "" {
		attrs = append(attrs, &cognitoidentityprovider.AttributeType{
			Name: aws.String("family_name"), Value: aws.String(in.LastName),
		})
	}

	_, err := p.client.AdminCreateUserWithContext(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:     aws.String(p.userPoolID),
		Username:       aws.String(in.Email),
		UserAttributes: attrs,
		// 招待メールは送らない
		MessageAction: aws.String(cognitoidentityprovider.MessageActionTypeSuppress),
	})
	if err != nil {
		if isAWSError(err, cognitoidentityprovider.ErrCodeUsernameExistsException) {
			return identity.Account{}, identity.ErrAccountExists
		}
		return identity.Account{}, err
	}

	// Permanent=trueでFORCE_CHANGE_PASSWORDを抜けて確認済みになる
	_, err = p.client.AdminSetUserPasswordWithContext(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(in.Email),
		Password:   aws.String(in.Password),
		Permanent:  aws.Bool(true),
	})
	if err != nil {
		return identity.Account{}, err
	}

	return p.FetchAccount(ctx, in.Email)
}

// Authenticate はADMIN_USER_PASSWORD_AUTHで認証する。
func (p *CognitoProvider) Authenticate(ctx context.Context, email string, password string) (identity.Tokens, identity.Account, error) {
	out, err := p.client.AdminInitiateAuthWithContext(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		UserPoolId: aws.String(p.userPoolID),
		ClientId:   aws.String(p.clientID),
		AuthFlow:   aws.String(cognitoidentityprovider.AuthFlowTypeAdminUserPasswordAuth),
		AuthParameters: map[string]*string{
			"USERNAME": aws.String(email),
			"PASSWORD": aws.String(password),
		},
	})
	if err != nil {
		if isAWSError(err,
			cognitoidentityprovider.ErrCodeNotAuthorizedException,
			cognitoidentityprovider.ErrCodeUserNotFoundException,
		) {
			return identity.Tokens{}, identity.Account{}, identity.ErrInvalidCredentials
		}
		return identity.Tokens{}, identity.Account{}, err
	}
	if out.AuthenticationResult == nil {
		// チャレンジ継続はこのAPIでは扱わない
		return identity.Tokens{}, identity.Account{}, identity.ErrInvalidCredentials
	}

	res := out.AuthenticationResult
	tokens := identity.Tokens{
		IDToken:      aws.StringValue(res.IdToken),
		AccessToken:  aws.StringValue(res.AccessToken),
		RefreshToken: aws.StringValue(res.RefreshToken),
		ExpiresIn:    aws.Int64Value(res.ExpiresIn),
	}

	account, err := p.FetchAccount(ctx, email)
	if err != nil {
		return identity.Tokens{}, identity.Account{}, err
	}

	return tokens, account, nil
}

// FetchAccount はAdminGetUserで属性を取り出す。
func (p *CognitoProvider) FetchAccount(ctx context.Context, email string) (identity.Account, error) {
	out, err := p.client.AdminGetUserWithContext(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		if isAWSError(err, cognitoidentityprovider.ErrCodeUserNotFoundException) {
			return identity.Account{}, identity.ErrAccountNotFound
		}
		return identity.Account{}, err
	}

	account := identity.Account{Email: email}
	for _, attr := range out.UserAttributes {
		switch aws.StringValue(attr.Name) {
		case "sub":
			account.Subject = aws.StringValue(attr.Value)
		case "preferred_username":
			account.Username = aws.StringValue(attr.Value)
		case "given_name":
			account.FirstName = aws.StringValue(attr.Value)
		case "family_name":
			account.LastName = aws.StringValue(attr.Value)
		}
	}
	if account.Username == "" {
		account.Username = email
	}

	return account, nil
}

// UpdateAttributes は氏名属性をCognito側へ反映する。
func (p *CognitoProvider) UpdateAttributes(ctx context.Context, email string, firstName string, lastName string) error {
	_, err := p.client.AdminUpdateUserAttributesWithContext(ctx, &cognitoidentityprovider.AdminUpdateUserAttributesInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []*cognitoidentityprovider.AttributeType{
			{Name: aws.String("given_name"), Value: aws.String(firstName)},
			{Name: aws.String("family_name"), Value: aws.String(lastName)},
		},
	})
	if err != nil {
		if isAWSError(err, cognitoidentityprovider.ErrCodeUserNotFoundException) {
			return identity.ErrAccountNotFound
		}
		return err
	}
	return nil
}

// isAWSError はawserrのコード一致を確認する。
func isAWSError(err error, codes ...string) bool {
	var ae awserr.Error
	if !errors.As(err, &ae) {
		return false
	}
	for _, code := range codes {
		if ae.Code() == code {
			return true
		}
	}
	return false
}
