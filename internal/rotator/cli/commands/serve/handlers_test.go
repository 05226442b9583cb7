package serve

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"retoken/internal/rotator/usecase"
	usecaseMock "retoken/internal/rotator/usecase/mock"
)

func TestHandleRegenerate(t *testing.T) {
	type testCase struct {
		name            string
		expectedCode    int
		expectedMessage string
		mockFunc        func(*usecaseMock.UseCase)
		reqBody         []byte
	}

	validBody := []byte(`{
		"database": {"driver": "sqlite", "dsn": "file::memory:"},
		"page_size": 10,
		"checkpoint_path": "` + filepath.ToSlash(filepath.Join(t.TempDir(), "checkpoint.json")) + `"
	}`)

	testCases := []testCase{
		{
			name:            "Successful task creation",
			expectedCode:    http.StatusOK,
			expectedMessage: "testID",
			mockFunc: func(uc *usecaseMock.UseCase) {
				uc.
					On("CreateTask", mock.Anything, mock.Anything).
					Return("testID", nil)
				uc.
					On("WaitResult", "testID").
					Return(nil).
					Maybe()
			},
			reqBody: validBody,
		},
		{
			name:            "Invalid run config",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Run config is not valid",
			mockFunc:        func(_ *usecaseMock.UseCase) {},
			reqBody:         []byte(`{"database": {"driver": "oracle", "dsn": "oracle://"}}`),
		},
		{
			name:            "Failed to start regeneration",
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Failed to start regeneration",
			mockFunc: func(uc *usecaseMock.UseCase) {
				uc.
					On("CreateTask", mock.Anything, mock.Anything).
					Return("", errors.New(""))
			},
			reqBody: validBody,
		},
	}

	testFunc := func(t *testing.T, tc testCase) {
		t.Helper()

		uc := usecaseMock.NewUseCase(t)
		tc.mockFunc(uc)

		req := httptest.NewRequest(http.MethodPost, "/regenerate", bytes.NewReader(tc.reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		res := httptest.NewRecorder()

		e := echo.New()
		context := e.NewContext(req, res)

		opts := handlerOptions{
			useCase: uc,
		}

		err := handleRegenerate(opts, context)
		require.NoError(t, err)
		require.Equal(t, tc.expectedCode, res.Code)
		require.Contains(t, res.Body.String(), tc.expectedMessage)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { testFunc(t, tc) })
	}
}

func TestHandleStatus(t *testing.T) {
	type testCase struct {
		name            string
		expectedCode    int
		expectedMessage string
		mockFunc        func(*usecaseMock.UseCase)
	}

	testCases := []testCase{
		{
			name:            "Finished task",
			expectedCode:    http.StatusOK,
			expectedMessage: "Regeneration completed successfully",
			mockFunc: func(uc *usecaseMock.UseCase) {
				uc.
					On("GetResult", "testID").
					Return(true, nil)
			},
		},
		{
			name:            "Unknown task",
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Failed to retrieve regeneration result",
			mockFunc: func(uc *usecaseMock.UseCase) {
				uc.
					On("GetResult", "testID").
					Return(false, errors.New("no task with task id testID"))
			},
		},
	}

	testFunc := func(t *testing.T, tc testCase) {
		t.Helper()

		uc := usecaseMock.NewUseCase(t)
		tc.mockFunc(uc)

		req := httptest.NewRequest(http.MethodGet, "/status/testID", nil)
		res := httptest.NewRecorder()

		e := echo.New()
		context := e.NewContext(req, res)
		context.SetParamNames("taskID")
		context.SetParamValues("testID")

		opts := handlerOptions{
			useCase: uc,
		}

		err := handleStatus(opts, context)
		require.NoError(t, err)
		require.Equal(t, tc.expectedCode, res.Code)
		require.Contains(t, res.Body.String(), tc.expectedMessage)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { testFunc(t, tc) })
	}
}

func TestHandleStatusRunningTask(t *testing.T) {
	uc := usecaseMock.NewUseCase(t)
	uc.
		On("GetResult", "testID").
		Return(false, nil)
	uc.
		On("GetProgress", "testID").
		Return(usecase.Progress{Done: 300, Total: 1000, Remaining: 9 * time.Second}, nil)

	req := httptest.NewRequest(http.MethodGet, "/status/testID", nil)
	res := httptest.NewRecorder()

	e := echo.New()
	context := e.NewContext(req, res)
	context.SetParamNames("taskID")
	context.SetParamValues("testID")

	err := handleStatus(handlerOptions{useCase: uc}, context)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Code)

	var status statusResponse

	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &status))
	require.Equal(t, uint64(300), status.Done)
	require.Equal(t, uint64(1000), status.Total)
	require.InDelta(t, 30.0, status.Percent, 0.001)
	require.InDelta(t, 9.0, status.RemainSeconds, 0.001)
}
