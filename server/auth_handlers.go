package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	errs "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"github.com/verisponsor/verisponsor/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		userResponse, apiErr := s.AuthService.SignupUser(&request)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "signup successful", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.LoginRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		loginResponse, apiErr := s.AuthService.LoginUser(&request)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, exists := c.Get("access_token")
		if !exists {
			respondAndAbort(c, "access token not found in context", http.StatusInternalServerError, nil, errs.New("internal server error", http.StatusInternalServerError))
			return
		}
		user, _ := c.Get("user")
		u, ok := user.(*models.User)
		if !ok {
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.New("internal server error", http.StatusInternalServerError))
			return
		}

		if apiErr := s.AuthService.LogoutUser(accessToken.(string), u.Email); apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		user, err := s.AuthService.GetUserProfile(userID)
		if err != nil {
			response.JSON(c, "unable to load profile", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, user.Response(), nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var details models.EditProfileRequest
		if err := c.ShouldBindJSON(&details); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthService.EditUserProfile(userID, &details); err != nil {
			response.JSON(c, "unable to update profile", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, nil, nil)
	}
}

const avatarMaxEdge = 512

func (s *Server) createS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.Config.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.Config.AwsAccessKeyID,
			s.Config.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// uploadAvatarToS3 downsizes the image and stores it publicly readable,
// returning the object URL.
func (s *Server) uploadAvatarToS3(client *s3.Client, file multipart.File, key string) (string, error) {
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}
	img = imaging.Fit(img, avatarMaxEdge, avatarMaxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to encode image: %v", err)
	}

	_, err = client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.AwsBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/jpeg"),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Config.AwsBucket, s.Config.AwsRegion, key), nil
}

func (s *Server) handleUpdateUserAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		file, fileHeader, err := c.Request.FormFile("avatar")
		if err != nil {
			response.JSON(c, "avatar file is required", http.StatusBadRequest, nil, err)
			return
		}

		s3Client, err := s.createS3Client()
		if err != nil {
			response.JSON(c, "failed to create S3 client", http.StatusInternalServerError, nil, err)
			return
		}

		key := fmt.Sprintf("avatars/%s_%s", userID.String(), fileHeader.Filename)
		avatarURL, err := s.uploadAvatarToS3(s3Client, file, key)
		if err != nil {
			log.Printf("avatar upload error: %v", err)
			response.JSON(c, "failed to upload avatar", http.StatusInternalServerError, nil, err)
			return
		}

		if err := s.AuthRepository.UpdateUserAvatar(userID, avatarURL); err != nil {
			response.JSON(c, "failed to update user profile", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "avatar updated", http.StatusOK, gin.H{"url": avatarURL}, nil)
	}
}
