package serve

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"

	"retoken/internal/rotator/checkpoint"
	"retoken/internal/rotator/cli/commands"
	"retoken/internal/rotator/common"
	"retoken/internal/rotator/models"
	"retoken/internal/rotator/usecase"
)

func setupRoutes(opts handlerOptions, e *echo.Echo) {
	e.GET("/status/:taskID", toEchoHandler(opts, handleStatus), rejectRequestWithBody)

	post := e.Group("", rejectRequestWithMissingLength, middleware.BodyLimit("1M"))
	post.POST("/regenerate", toEchoHandler(opts, handleRegenerate))
}

// handleRegenerate handler for endpoint 'regenerate'.
func handleRegenerate(opts handlerOptions, c echo.Context) error {
	body, err := getRequestBody(c)
	if err != nil {
		return sendResponse(
			c,
			"json",
			http.StatusInternalServerError,
			response{
				Message: "Unable to read request body",
				Error:   err.Error(),
			},
		)
	}

	var runConfig models.RunConfig

	err = runConfig.ParseFromJSON(body)
	if err != nil {
		return sendResponse(
			c,
			"json",
			http.StatusBadRequest,
			response{
				Message: "Run config is not valid",
				Error:   err.Error(),
			},
		)
	}

	// the task outlives this request
	ctx := context.WithoutCancel(c.Request().Context())

	ticketStore, err := commands.OpenStore(ctx, runConfig.Database)
	if err != nil {
		return sendResponse(
			c,
			"json",
			http.StatusInternalServerError,
			response{
				Message: "Failed to connect to the database",
				Error:   err.Error(),
			},
		)
	}

	taskID, err := opts.useCase.CreateTask(ctx, usecase.TaskConfig{
		RunConfig:   &runConfig,
		Store:       ticketStore,
		Checkpoints: checkpoint.NewFileStore(afero.NewOsFs(), runConfig.CheckpointPath),
	})
	if err != nil {
		_ = ticketStore.Close()

		return sendResponse(
			c,
			"json",
			http.StatusInternalServerError,
			response{
				Message: "Failed to start regeneration",
				Error:   err.Error(),
			},
		)
	}

	go func() {
		_ = opts.useCase.WaitResult(taskID)
		_ = ticketStore.Close()
	}()

	return sendResponse(
		c,
		"string",
		http.StatusOK,
		taskID,
	)
}

// handleStatus handler for endpoint 'status'.
func handleStatus(opts handlerOptions, c echo.Context) error {
	taskID := c.Param("taskID")

	finished, err := opts.useCase.GetResult(taskID)
	if err != nil {
		return sendResponse(
			c,
			"json",
			http.StatusInternalServerError,
			response{
				Message: "Failed to retrieve regeneration result",
				Error:   err.Error(),
			},
		)
	}

	if finished {
		return sendResponse(
			c,
			"json",
			http.StatusOK,
			response{
				Message: "Regeneration completed successfully",
			},
		)
	}

	progress, err := opts.useCase.GetProgress(taskID)
	if err != nil {
		return sendResponse(
			c,
			"json",
			http.StatusInternalServerError,
			response{
				Message: "Failed to retrieve regeneration progress",
				Error:   err.Error(),
			},
		)
	}

	status := statusResponse{
		Done:    progress.Done,
		Total:   progress.Total,
		Percent: common.GetPercentage(progress.Total, progress.Done),
	}

	if progress.Remaining != usecase.RemainingUnknown {
		status.RemainSeconds = progress.Remaining.Seconds()
	}

	return sendResponse(
		c,
		"json",
		http.StatusOK,
		status,
	)
}
