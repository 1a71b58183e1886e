package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/unitofwork"
	"ai-docauthor-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ProjectRepository())
	assert.NotNil(t, uow.ConversationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Project Aggregate Round Trip", func(t *testing.T) {
		ctx := context.Background()

		project := &entity.Project{
			Id:            uuid.New(),
			Name:          "Integration Project " + uuid.New().String(),
			Context:       "integration test context",
			VectorStoreId: "vs_integration_" + uuid.New().String(),
			SectionOrder:  []uuid.UUID{},
		}
		err := uow.ProjectRepository().Create(ctx, project)
		assert.NoError(t, err)
		defer uow.ProjectRepository().Delete(ctx, project.Id)

		section := &entity.Section{
			Id:   uuid.New(),
			Name: "Integration Section",
		}
		err = uow.ProjectRepository().CreateSection(ctx, project.Id, section)
		assert.NoError(t, err)

		err = uow.ProjectRepository().AddSectionMessage(ctx, project.Id, section.Id, entity.HistoryMessage{
			Content: "integration content",
			Type:    entity.HistoryMessageResponse,
		})
		assert.NoError(t, err)

		loaded, err := uow.ProjectRepository().FindByID(ctx, project.Id)
		assert.NoError(t, err)
		assert.NotNil(t, loaded)
		assert.Equal(t, []uuid.UUID{section.Id}, loaded.SectionOrder)
		assert.Len(t, loaded.Sections, 1)
		assert.Equal(t, "integration content", loaded.Sections[0].CurrentContent())
	})

	t.Run("Transactional Project Conversation Delete", func(t *testing.T) {
		ctx := context.Background()

		project := &entity.Project{
			Id:            uuid.New(),
			Name:          "Tx Project " + uuid.New().String(),
			Context:       "tx",
			VectorStoreId: "vs_tx_" + uuid.New().String(),
			SectionOrder:  []uuid.UUID{},
		}
		err := uow.ProjectRepository().Create(ctx, project)
		assert.NoError(t, err)

		conversation := &entity.Conversation{
			Id:          uuid.New(),
			ProjectId:   project.Id,
			ProjectName: project.Name,
		}
		err = uow.ConversationRepository().Create(ctx, conversation)
		assert.NoError(t, err)

		err = uow.ConversationRepository().AddMessageExchange(ctx, project.Id, entity.MessageExchange{
			UserPrompt: entity.UserPrompt{UserText: "hello"},
			AIResponse: entity.AIResponse{Id: "resp_tx", Status: "completed", OutputText: "hi"},
		})
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)

		err = uow.ProjectRepository().Delete(ctx, project.Id)
		assert.NoError(t, err)
		err = uow.ConversationRepository().Delete(ctx, conversation.Id)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		gone, err := uow.ProjectRepository().FindByID(ctx, project.Id)
		assert.NoError(t, err)
		assert.Nil(t, gone)

		t.Log("Successfully deleted Project with Conversation in Transaction")
	})
}
