// FILE: internal/controller/file_controller.go
package controller

import (
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/pkg/serverutils"
	"ai-docauthor-be/internal/service"
	"ai-docauthor-be/pkg/openai"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	UploadShared(ctx *fiber.Ctx) error
	ListShared(ctx *fiber.Ctx) error
	DeleteShared(ctx *fiber.Ctx) error
	UploadProject(ctx *fiber.Ctx) error
	ListProject(ctx *fiber.Ctx) error
	DeleteProject(ctx *fiber.Ctx) error
}

type fileController struct {
	fileSearchService   service.IFileSearchService
	projectService      service.IProjectService
	sharedVectorStoreID string
}

func NewFileController(
	fileSearchService service.IFileSearchService,
	projectService service.IProjectService,
	sharedVectorStoreID string,
) IFileController {
	return &fileController{
		fileSearchService:   fileSearchService,
		projectService:      projectService,
		sharedVectorStoreID: sharedVectorStoreID,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	shared := r.Group("/search-files/shared")
	shared.Use(serverutils.JwtMiddleware)
	shared.Post("/", c.UploadShared)
	shared.Get("/", c.ListShared)
	shared.Delete("/:fileId", c.DeleteShared)

	project := r.Group("/projects/:projectId/search-files")
	project.Use(serverutils.JwtMiddleware)
	project.Post("/", c.UploadProject)
	project.Get("/", c.ListProject)
	project.Delete("/:fileId", c.DeleteProject)
}

func (c *fileController) UploadShared(ctx *fiber.Ctx) error {
	return c.upload(ctx, c.sharedVectorStoreID)
}

func (c *fileController) ListShared(ctx *fiber.Ctx) error {
	return c.list(ctx, c.sharedVectorStoreID)
}

func (c *fileController) DeleteShared(ctx *fiber.Ctx) error {
	return c.delete(ctx, c.sharedVectorStoreID)
}

func (c *fileController) UploadProject(ctx *fiber.Ctx) error {
	vectorStoreID, err := c.projectVectorStore(ctx)
	if err != nil {
		return err
	}
	return c.upload(ctx, vectorStoreID)
}

func (c *fileController) ListProject(ctx *fiber.Ctx) error {
	vectorStoreID, err := c.projectVectorStore(ctx)
	if err != nil {
		return err
	}
	return c.list(ctx, vectorStoreID)
}

func (c *fileController) DeleteProject(ctx *fiber.Ctx) error {
	vectorStoreID, err := c.projectVectorStore(ctx)
	if err != nil {
		return err
	}
	return c.delete(ctx, vectorStoreID)
}

func (c *fileController) projectVectorStore(ctx *fiber.Ctx) (string, error) {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}
	return c.projectService.GetVectorStoreID(ctx.Context(), projectId)
}

// upload expects a multipart form with one file per part.
func (c *fileController) upload(ctx *fiber.Ctx, vectorStoreID string) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form")
	}

	var uploads []service.FileUpload
	var openFiles []interface{ Close() error }
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	for _, headers := range form.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return err
			}
			openFiles = append(openFiles, file)
			uploads = append(uploads, service.FileUpload{
				Filename: header.Filename,
				Content:  file,
			})
		}
	}
	if len(uploads) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files in request")
	}

	files, err := c.fileSearchService.UploadAll(ctx.Context(), vectorStoreID, uploads)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Files uploaded", toUploadResponse(files)))
}

func (c *fileController) list(ctx *fiber.Ctx, vectorStoreID string) error {
	files, err := c.fileSearchService.ListFiles(ctx.Context(), vectorStoreID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Files", dto.ListFilesResponse{Files: toUploadResponse(files).Files}))
}

func (c *fileController) delete(ctx *fiber.Ctx, vectorStoreID string) error {
	fileId := ctx.Params("fileId")
	if fileId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing file id")
	}

	if err := c.fileSearchService.RemoveFile(ctx.Context(), vectorStoreID, fileId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("File deleted", nil))
}

func toUploadResponse(files []*openai.File) dto.UploadFilesResponse {
	result := dto.UploadFilesResponse{Files: make([]dto.UploadedFileResponse, 0, len(files))}
	for _, file := range files {
		result.Files = append(result.Files, dto.UploadedFileResponse{
			Id:       file.ID,
			Filename: file.Filename,
			Bytes:    file.Bytes,
		})
	}
	return result
}
