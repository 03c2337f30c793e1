package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickthumb/internal/errors"
	"quickthumb/internal/model"
)

func TestGenerationService_Generate_NoCredits(t *testing.T) {
	mockUser := new(MockUserRepository)
	mockThumb := new(MockThumbnailRepository)
	mockGen := new(MockImageGenerator)
	mockStore := new(MockArtifactStore)

	svc := NewGenerationService(mockUser, mockThumb, mockGen, mockStore, nil)
	result, err := svc.Generate(context.Background(), &model.User{UserID: "user_a", Credits: 0}, GenerateInput{
		ThumbnailText: "Test",
	})

	assert.ErrorIs(t, err, errors.ErrInsufficientCredits)
	assert.Nil(t, result)
	// no provider call and no store mutation of any kind
	mockGen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	mockUser.AssertNotCalled(t, "SpendCredit", mock.Anything, mock.Anything)
	mockThumb.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerationService_Generate_Success(t *testing.T) {
	mockUser := new(MockUserRepository)
	mockThumb := new(MockThumbnailRepository)
	mockGen := new(MockImageGenerator)
	mockStore := new(MockArtifactStore)

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	mockGen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(image, nil)
	mockUser.On("SpendCredit", mock.Anything, "user_a").Return(nil)
	mockStore.On("Save", mock.Anything, image).Return("/static/images/abc.png", nil)
	mockThumb.On("Create", mock.Anything, mock.MatchedBy(func(th *model.Thumbnail) bool {
		return th.UserID == "user_a" && th.ThumbnailText == "Big News" && th.ImageURL == "/static/images/abc.png"
	})).Return(nil)

	svc := NewGenerationService(mockUser, mockThumb, mockGen, mockStore, nil)
	result, err := svc.Generate(context.Background(), &model.User{UserID: "user_a", Credits: 3}, GenerateInput{
		Description:   "a launch video",
		ThumbnailText: "Big News",
		Style:         "modern",
		AspectRatio:   "16:9",
	})

	assert.NoError(t, err)
	assert.Equal(t, "/static/images/abc.png", result.Image)
	assert.Equal(t, 2, result.Credits)
	mockUser.AssertNumberOfCalls(t, "SpendCredit", 1)
	mockThumb.AssertNumberOfCalls(t, "Create", 1)
	mockUser.AssertExpectations(t)
	mockThumb.AssertExpectations(t)
	mockGen.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestGenerationService_Generate_ProviderFailure(t *testing.T) {
	mockUser := new(MockUserRepository)
	mockThumb := new(MockThumbnailRepository)
	mockGen := new(MockImageGenerator)
	mockStore := new(MockArtifactStore)

	mockGen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.ErrGenerationFailed)

	svc := NewGenerationService(mockUser, mockThumb, mockGen, mockStore, nil)
	result, err := svc.Generate(context.Background(), &model.User{UserID: "user_a", Credits: 1}, GenerateInput{
		ThumbnailText: "Test",
	})

	assert.ErrorIs(t, err, errors.ErrGenerationFailed)
	assert.Nil(t, result)
	// failed generation costs nothing
	mockUser.AssertNotCalled(t, "SpendCredit", mock.Anything, mock.Anything)
	mockThumb.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerationService_Generate_InlineArtifactNotRecorded(t *testing.T) {
	mockUser := new(MockUserRepository)
	mockThumb := new(MockThumbnailRepository)
	mockGen := new(MockImageGenerator)
	mockStore := new(MockArtifactStore)

	mockGen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return([]byte{1}, nil)
	mockUser.On("SpendCredit", mock.Anything, "user_a").Return(nil)
	mockStore.On("Save", mock.Anything, mock.Anything).Return("data:image/png;base64,AQ==", nil)
	mockThumb.On("Create", mock.Anything, mock.MatchedBy(func(th *model.Thumbnail) bool {
		// inline artifacts are returned to the caller but not stored as URLs
		return th.ImageURL == ""
	})).Return(nil)

	svc := NewGenerationService(mockUser, mockThumb, mockGen, mockStore, nil)
	result, err := svc.Generate(context.Background(), &model.User{UserID: "user_a", Credits: 1}, GenerateInput{
		ThumbnailText: "Test",
	})

	assert.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AQ==", result.Image)
	assert.Equal(t, 0, result.Credits)
	mockThumb.AssertExpectations(t)
}

func TestGenerationService_Generate_ForwardsStrippedReferences(t *testing.T) {
	mockUser := new(MockUserRepository)
	mockThumb := new(MockThumbnailRepository)
	mockGen := new(MockImageGenerator)
	mockStore := new(MockArtifactStore)

	mockGen.On("Generate", mock.Anything, mock.Anything, []string{"c3ViamVjdA==", "c3R5bGU="}).Return([]byte{1}, nil)
	mockUser.On("SpendCredit", mock.Anything, "user_a").Return(nil)
	mockStore.On("Save", mock.Anything, mock.Anything).Return("data:image/png;base64,AQ==", nil)
	mockThumb.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewGenerationService(mockUser, mockThumb, mockGen, mockStore, nil)
	_, err := svc.Generate(context.Background(), &model.User{UserID: "user_a", Credits: 1}, GenerateInput{
		ThumbnailText:  "Test",
		SubjectImage:   "data:image/png;base64,c3ViamVjdA==",
		ReferenceImage: "c3R5bGU=",
	})

	assert.NoError(t, err)
	mockGen.AssertExpectations(t)
}

func TestGenerationService_ListThumbnails(t *testing.T) {
	mockThumb := new(MockThumbnailRepository)
	records := []model.Thumbnail{{ID: "t2", UserID: "user_a"}, {ID: "t1", UserID: "user_a"}}
	mockThumb.On("ListRecentByUser", mock.Anything, "user_a", ThumbnailHistoryLimit).Return(records, nil)

	svc := NewGenerationService(new(MockUserRepository), mockThumb, new(MockImageGenerator), new(MockArtifactStore), nil)
	got, err := svc.ListThumbnails(context.Background(), "user_a")

	assert.NoError(t, err)
	assert.Equal(t, records, got)
	mockThumb.AssertExpectations(t)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(GenerateInput{
		Description:   "cooking stream highlights",
		ThumbnailText: "EPIC FAIL",
		Style:         "bold",
		AspectRatio:   "16:9",
	})

	assert.Contains(t, prompt, "cooking stream highlights")
	assert.Contains(t, prompt, "'EPIC FAIL'")
	assert.Contains(t, prompt, "Style: bold")
	assert.Contains(t, prompt, "Aspect ratio: 16:9")
}

func TestStripDataURI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"data uri", "data:image/png;base64,AAAA", "AAAA"},
		{"jpeg data uri", "data:image/jpeg;base64,BBBB", "BBBB"},
		{"raw base64", "CCCC", "CCCC"},
		{"data prefix without base64 marker", "data:image/png,DDDD", "data:image/png,DDDD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripDataURI(tt.input))
		})
	}
}
