package cmd

import (
	"log/slog"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/websocket"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/oracle/gemini"
	"dispatch/internal/adapters/out/oracle/local"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
)

// CompositionRoot owns the process-wide singletons and builds handlers on demand.
type CompositionRoot struct {
	config     Config
	store      *memory.Store
	uowFactory *memory.UnitOfWorkFactory
	live       *memory.LiveSessions
	hub        *websocket.Hub
	clock      kernel.Clock
	logger     *slog.Logger

	assignmentOracle ports.AssignmentOracle
	coPilotOracle    ports.CoPilotOracle
}

func NewCompositionRoot(config Config, logger *slog.Logger) CompositionRoot {
	store := memory.NewStore(nil)
	root := CompositionRoot{
		config:     config,
		store:      store,
		uowFactory: memory.NewUnitOfWorkFactory(store),
		live:       memory.NewLiveSessions(),
		hub:        websocket.NewHub(logger),
		clock:      kernel.SystemClock{},
		logger:     logger,
	}

	if config.OracleProvider == OracleGemini {
		client := gemini.NewClient(gemini.Config{
			APIKey:  config.GeminiAPIKey,
			Model:   config.GeminiModel,
			BaseURL: config.GeminiBaseURL,
			Timeout: config.OracleTimeout,
		})
		root.assignmentOracle = gemini.NewAssignmentOracle(client)
		root.coPilotOracle = gemini.NewCoPilotOracle(client)
	} else {
		root.assignmentOracle = local.NewNearestDriverOracle(0)
		root.coPilotOracle = local.NewKeywordCoPilot()
	}

	return root
}

func (c *CompositionRoot) Store() *memory.Store {
	return c.store
}

func (c *CompositionRoot) Hub() *websocket.Hub {
	return c.hub
}

func (c *CompositionRoot) Clock() kernel.Clock {
	return c.clock
}

func (c *CompositionRoot) UoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSubmitProofOfDeliveryCommandHandler() commands.SubmitProofOfDeliveryCommandHandler {
	return commands.NewSubmitProofOfDeliveryCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	return commands.NewRateDeliveryCommandHandler(c.UoWFactory())
}

func (c *CompositionRoot) CreateAddCustomerInstructionCommandHandler() commands.AddCustomerInstructionCommandHandler {
	return commands.NewAddCustomerInstructionCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSmartAssignCommandHandler() commands.SmartAssignCommandHandler {
	return commands.NewSmartAssignCommandHandler(
		c.UoWFactory(), c.store, c.assignmentOracle, c.config.OracleTimeout, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeDriverAccountCommandHandler() commands.ChangeDriverAccountCommandHandler {
	return commands.NewChangeDriverAccountCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeDriverStatusCommandHandler() commands.ChangeDriverStatusCommandHandler {
	return commands.NewChangeDriverStatusCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateOptimizeRouteCommandHandler() commands.OptimizeRouteCommandHandler {
	return commands.NewOptimizeRouteCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateMarkNotificationsReadCommandHandler() commands.MarkNotificationsReadCommandHandler {
	return commands.NewMarkNotificationsReadCommandHandler(c.UoWFactory())
}

func (c *CompositionRoot) CreateAskCoPilotCommandHandler() commands.AskCoPilotCommandHandler {
	return commands.NewAskCoPilotCommandHandler(
		c.UoWFactory(),
		c.coPilotOracle,
		c.config.OracleTimeout,
		c.CreateOptimizeRouteCommandHandler(),
		c.CreateSendMessageCommandHandler(),
	)
}

func (c *CompositionRoot) CreateMoveDriversCommandHandler() commands.MoveDriversCommandHandler {
	return commands.NewMoveDriversCommandHandler(
		c.UoWFactory(),
		c.live,
		commands.SystemRandomizer{},
		commands.TelemetrySettings{
			MoveProbability: c.config.MoveProbability,
			MoveDelta:       c.config.MoveDelta,
			IdleThreshold:   c.config.IdleThreshold,
		},
		c.clock,
	)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	return commands.NewUpdateDriverLocationCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReportLocationFailureCommandHandler() commands.ReportLocationFailureCommandHandler {
	return commands.NewReportLocationFailureCommandHandler(c.UoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetFleetQueryHandler() queries.GetFleetQueryHandler {
	return queries.NewGetFleetQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetDriverHistoryQueryHandler() queries.GetDriverHistoryQueryHandler {
	return queries.NewGetDriverHistoryQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetConversationQueryHandler() queries.GetConversationQueryHandler {
	return queries.NewGetConversationQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.store)
}

// CreateHTTPServer wires every use case exposed over HTTP.
func (c *CompositionRoot) CreateHTTPServer() *dispatchhttp.Server {
	return dispatchhttp.NewServer(dispatchhttp.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		AssignOrder:            c.CreateAssignOrderCommandHandler(),
		UpdateOrderStatus:      c.CreateUpdateOrderStatusCommandHandler(),
		SubmitProofOfDelivery:  c.CreateSubmitProofOfDeliveryCommandHandler(),
		RateDelivery:           c.CreateRateDeliveryCommandHandler(),
		AddCustomerInstruction: c.CreateAddCustomerInstructionCommandHandler(),
		SmartAssign:            c.CreateSmartAssignCommandHandler(),
		RegisterDriver:         c.CreateRegisterDriverCommandHandler(),
		ChangeDriverAccount:    c.CreateChangeDriverAccountCommandHandler(),
		ChangeDriverStatus:     c.CreateChangeDriverStatusCommandHandler(),
		OptimizeRoute:          c.CreateOptimizeRouteCommandHandler(),
		SendMessage:            c.CreateSendMessageCommandHandler(),
		MarkNotificationsRead:  c.CreateMarkNotificationsReadCommandHandler(),
		AskCoPilot:             c.CreateAskCoPilotCommandHandler(),

		GetFleet:         c.CreateGetFleetQueryHandler(),
		GetDriverHistory: c.CreateGetDriverHistoryQueryHandler(),
		GetConversation:  c.CreateGetConversationQueryHandler(),
		GetNotifications: c.CreateGetNotificationsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateWebSocketHandler() *websocket.Handler {
	return websocket.NewHandler(
		c.hub,
		c.live,
		c.CreateUpdateDriverLocationCommandHandler(),
		c.CreateReportLocationFailureCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateMoveDriversCommandHandler(),
		c.CreateSmartAssignCommandHandler(),
		jobs.Schedules{
			TelemetryTick:   c.config.TickSchedule(),
			SmartAssignment: c.config.SmartAssignSchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
