// Package services contains server-side business logic. This file implements
// UserService: registration, login (issuing session JWTs), profile reads and
// updates, password changes, and profile-picture storage in S3.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	sc "github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Profile is the client-facing projection of a user: everything except the
// password hash, plus a short-lived URL for the stored profile picture.
type Profile struct {
	UserID     string    `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserService provides credential and profile operations:
//   - Register: create users with hashed passwords
//   - Login: verify credentials and mint a session token
//   - GetProfile / UpdateProfile / UpdatePassword / UpdateProfilePicture
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	config                *sc.Config
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		config:                cfg,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user. All fields are required; the password is
// hashed before it reaches the repository and the raw value is never stored.
// A duplicate email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("all fields are required: %w", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Login verifies the credentials and returns a signed session token. An
// unknown email and a wrong password fail identically so that account
// existence is not leaked.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required: %w", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// GetProfile returns the profile projection for userID. When a profile
// picture is stored, ProfilePic carries a presigned GET URL for it.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return s.toProfile(ctx, user), nil
}

// UpdateProfile overwrites the display name. Both fields are required.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*Profile, error) {
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first name and last name are required: %w", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.UpdateProfile(ctx, userID, firstName, lastName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return s.toProfile(ctx, user), nil
}

// UpdatePassword re-verifies the current password before accepting the new
// one. A wrong current password yields common.ErrorUnauthorized.
func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("current password and new password are required: %w", common.ErrorValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("new password must be at least 6 characters long: %w", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return common.ErrorUnauthorized
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	if err := repo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// UpdateProfilePicture stores the uploaded file in the object storage bucket
// and persists the object key as the user's profile picture reference.
func (s *UserService) UpdateProfilePicture(ctx context.Context, userID string, file io.Reader) (*Profile, error) {
	if file == nil {
		return nil, fmt.Errorf("profile picture is required: %w", common.ErrorValidation)
	}

	client, err := s.getS3Client()
	if err != nil {
		return nil, common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   file,
	}); err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.UpdateProfilePic(ctx, userID, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return s.toProfile(ctx, user), nil
}

// GetRandomStorageKey returns a date-partitioned object key for uploads.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *UserService) awsConfig() (aws.Config, error) {
	return loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
}

func (s *UserService) getS3Client() (*s3.Client, error) {
	cfg, err := s.awsConfig()
	if err != nil {
		return nil, err
	}
	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// presignedAvatarURL converts a stored object key into a short-lived GET URL.
func (s *UserService) presignedAvatarURL(ctx context.Context, key string) (string, error) {
	client, err := s.getS3Client()
	if err != nil {
		return "", err
	}
	presignClient := newS3PresignClient(client)

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// toProfile maps a user row to its client-facing projection. If presigning
// the avatar fails, the stored key is returned as-is rather than failing the
// whole profile read.
func (s *UserService) toProfile(ctx context.Context, user *models.User) *Profile {
	p := &Profile{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.ProfilePic != "" {
		url, err := s.presignedAvatarURL(ctx, user.ProfilePic)
		if err != nil {
			p.ProfilePic = user.ProfilePic
		} else {
			p.ProfilePic = url
		}
	}
	return p
}
