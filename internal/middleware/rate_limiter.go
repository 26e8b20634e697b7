package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
)

// janelaIP conta requisições de um IP dentro de uma janela deslizante.
type janelaIP struct {
	contagem int
	fim      time.Time
	mu       sync.Mutex
}

// limitador é um rate limiter em memória por IP. Suficiente para uma
// instância; com múltiplas réplicas o limite vale por réplica.
type limitador struct {
	limite   int
	janela   time.Duration
	mensagem string

	mu  sync.Mutex
	ips map[string]*janelaIP
}

func novoLimitador(limite int, janela time.Duration, mensagem string) *limitador {
	l := &limitador{
		limite:   limite,
		janela:   janela,
		mensagem: mensagem,
		ips:      make(map[string]*janelaIP),
	}
	registrarParaExpurgo(l)
	return l
}

func (l *limitador) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		entrada := l.entradaDoIP(c.ClientIP())

		entrada.mu.Lock()
		defer entrada.mu.Unlock()

		agora := time.Now()
		if agora.After(entrada.fim) {
			entrada.contagem = 0
			entrada.fim = agora.Add(l.janela)
		}
		entrada.contagem++
		if entrada.contagem > l.limite {
			c.Header("Retry-After", entrada.fim.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensagem))
			return
		}
		c.Next()
	}
}

func (l *limitador) entradaDoIP(ip string) *janelaIP {
	l.mu.Lock()
	defer l.mu.Unlock()
	entrada, ok := l.ips[ip]
	if !ok {
		entrada = &janelaIP{}
		l.ips[ip] = entrada
	}
	return entrada
}

// expurgar remove entradas cuja janela já venceu e devolve quantas saíram.
func (l *limitador) expurgar(agora time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removidas := 0
	for ip, entrada := range l.ips {
		entrada.mu.Lock()
		if agora.After(entrada.fim) {
			delete(l.ips, ip)
			removidas++
		}
		entrada.mu.Unlock()
	}
	return removidas
}

// LoginRateLimiter limita tentativas de login a 20 por minuto por IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limitadorLogin.handler()
}

// RateLimiter limita requisições por IP numa janela deslizante.
func RateLimiter(limite int, janela time.Duration) gin.HandlerFunc {
	return novoLimitador(limite, janela, "Muitas requisições. Tente novamente em instantes.").handler()
}

var limitadorLogin = novoLimitador(20, time.Minute,
	"Muitas tentativas de login. Tente novamente em 1 minuto.")

// Os mapas de IP são expurgados periodicamente para não crescerem com
// endereços que nunca voltam.
const intervaloExpurgo = 5 * time.Minute

var (
	limitadoresMu sync.Mutex
	limitadores   []*limitador
	expurgoAtivo  bool
)

func registrarParaExpurgo(l *limitador) {
	limitadoresMu.Lock()
	defer limitadoresMu.Unlock()
	limitadores = append(limitadores, l)
	if !expurgoAtivo {
		expurgoAtivo = true
		go expurgoPeriodico()
	}
}

func expurgoPeriodico() {
	ticker := time.NewTicker(intervaloExpurgo)
	defer ticker.Stop()

	for agora := range ticker.C {
		limitadoresMu.Lock()
		ativos := append([]*limitador(nil), limitadores...)
		limitadoresMu.Unlock()

		total := 0
		for _, l := range ativos {
			total += l.expurgar(agora)
		}
		if total > 0 {
			log.Debug().Int("entradas_removidas", total).Msg("rate limiter expurgado")
		}
	}
}
