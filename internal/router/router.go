package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/config"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/handler"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/middleware"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

// New monta o grafo de dependências e devolve o engine Gin configurado.
// Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Cadeia global de middleware (a ordem importa)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// Repositórios
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	stockItemRepo := repository.NewStockItemRepository(db)
	movimentoRepo := repository.NewMovimentoEstoqueRepository(db)
	pratoRepo := repository.NewPratoRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	metaRepo := repository.NewMetaCMVRepository(db)

	// Serviços
	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
		time.Duration(cfg.JWTRefreshHours)*time.Hour)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	estoqueSvc := service.NewEstoqueService(stockItemRepo, movimentoRepo, pratoRepo)
	pratoSvc := service.NewPratoService(pratoRepo, stockItemRepo)
	comandaSvc := service.NewComandaService(comandaRepo, pratoRepo)
	vendaSvc := service.NewVendaService(vendaRepo, pratoRepo, stockItemRepo, movimentoRepo)
	cmvSvc := service.NewCMVService(pratoRepo, movimentoRepo, metaRepo, rdb,
		time.Duration(cfg.CacheCMVSegundos)*time.Second)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	pratosH := handler.NewPratosHandler(pratoSvc)
	comandasH := handler.NewComandasHandler(comandaSvc, cfg.NomeRestaurante, cfg.PDFStoragePath)
	vendasH := handler.NewVendasHandler(vendaSvc)
	cmvH := handler.NewCMVHandler(cmvSvc, cfg.PrevisaoHorizonteMes)

	// Rotas públicas
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Rotas autenticadas
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(middleware.RolAtendente, middleware.RolGerente, middleware.RolAdministrador)
	gestao := middleware.RequireRole(middleware.RolGerente, middleware.RolAdministrador)
	admin := middleware.RequireRole(middleware.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)
		v1.POST("/auth/senha", authH.TrocarSenha)

		// Categorias: leitura para todos, escrita para gestão
		v1.GET("/categorias", todos, categoriasH.Listar)
		categorias := v1.Group("/categorias", gestao)
		{
			categorias.POST("", categoriasH.Criar)
			categorias.PUT("/:id", categoriasH.Atualizar)
			categorias.DELETE("/:id", categoriasH.Remover)
		}

		// Estoque
		v1.GET("/estoque", todos, estoqueH.Listar)
		v1.GET("/estoque/alertas", todos, estoqueH.Alertas)
		v1.GET("/estoque/movimentos", todos, estoqueH.Movimentos)
		v1.GET("/estoque/:id", todos, estoqueH.Buscar)
		v1.POST("/estoque/:id/ajustes", todos, estoqueH.Ajustar)
		estoque := v1.Group("/estoque", gestao)
		{
			estoque.POST("", estoqueH.Criar)
			estoque.PUT("/:id", estoqueH.Atualizar)
			estoque.DELETE("/:id", estoqueH.Remover)
		}

		// Pratos e fichas técnicas
		v1.GET("/pratos", todos, pratosH.Listar)
		v1.GET("/pratos/:id", todos, pratosH.Buscar)
		v1.GET("/pratos/:id/custo", todos, pratosH.AnalisarCusto)
		v1.POST("/pratos/:id/preparar", todos, estoqueH.PrepararPrato)
		v1.POST("/pratos/preparar-lote", todos, estoqueH.PrepararLote)
		pratos := v1.Group("/pratos", gestao)
		{
			pratos.POST("", pratosH.Criar)
			pratos.PUT("/:id", pratosH.Atualizar)
			pratos.DELETE("/:id", pratosH.Remover)
		}

		// Comandas
		comandas := v1.Group("/comandas", todos)
		{
			comandas.POST("", comandasH.Criar)
			comandas.GET("", comandasH.Listar)
			comandas.GET("/:id", comandasH.Buscar)
			comandas.GET("/:id/historico", comandasH.Historico)
			comandas.GET("/:id/pdf", comandasH.GerarPDF)
			comandas.POST("/:id/itens", comandasH.AdicionarItem)
			comandas.PUT("/:id/itens/:itemId", comandasH.EditarItem)
			comandas.DELETE("/:id/itens/:itemId", comandasH.RemoverItem)
			comandas.PATCH("/:id/status", comandasH.AtualizarStatus)
			comandas.POST("/:id/separar", comandasH.Separar)
		}

		// Vendas de balcão
		v1.POST("/vendas", todos, vendasH.Registrar)
		v1.GET("/vendas", todos, vendasH.Listar)
		v1.GET("/vendas/:id", todos, vendasH.Buscar)

		// Análise de CMV, restrita à gestão
		cmv := v1.Group("/cmv", gestao)
		{
			cmv.GET("/pratos", cmvH.Analises)
			cmv.GET("/resumo", cmvH.Resumo)
			cmv.GET("/categorias", cmvH.PorCategoria)
			cmv.GET("/tendencia", cmvH.TendenciaSemanal)
			cmv.GET("/previsao", cmvH.Previsao)
			cmv.GET("/export", cmvH.ExportarCSV)
			cmv.GET("/metas", cmvH.ListarMetas)
			cmv.GET("/metas/progresso", cmvH.ProgressoMetas)
			cmv.POST("/metas", cmvH.CriarMeta)
			cmv.PUT("/metas/:id", cmvH.AtualizarMeta)
			cmv.DELETE("/metas/:id", cmvH.RemoverMeta)
		}

		// Usuários, restritos ao administrador
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.DELETE("/:id", authH.DesativarUsuario)
		}
	}

	// Swagger UI apenas fora de produção
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
