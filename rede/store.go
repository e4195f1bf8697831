package rede

import "sync"

// Store representa o estabelecimento (filiação + chave de integração) e
// mantém o cache do bearer token OAuth2 obtido para ele.
//
// É seguro para uso concorrente. A renovação do token é serializada por
// Store, então requisições paralelas não fazem buscas redundantes.
type Store struct {
	mu          sync.RWMutex
	filiation   string
	token       string
	environment *Environment

	bearerToken          string
	bearerTokenExpiresAt int64 // epoch em segundos

	// refreshMu serializa a renovação do token
	refreshMu sync.Mutex
}

// NewStore cria um Store. Se env for nil, produção é usada.
func NewStore(filiation, token string, env *Environment) *Store {
	if env == nil {
		env = Production()
	}

	return &Store{
		filiation:   filiation,
		token:       token,
		environment: env,
	}
}

func (s *Store) Filiation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filiation
}

func (s *Store) SetFiliation(filiation string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filiation = filiation
	return s
}

// Token retorna a chave de integração do estabelecimento
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) SetToken(token string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s
}

func (s *Store) Environment() *Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.environment
}

func (s *Store) SetEnvironment(env *Environment) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.environment = env
	return s
}

// SetBearerToken define o bearer token e seu vencimento absoluto (epoch).
// O valor é sobrescrito sem validação.
func (s *Store) SetBearerToken(token string, expiresAt int64) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bearerToken = token
	s.bearerTokenExpiresAt = expiresAt
	return s
}

// BearerToken retorna o token em cache e seu vencimento; ok é false se não há token
func (s *Store) BearerToken() (token string, expiresAt int64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bearerToken, s.bearerTokenExpiresAt, s.bearerToken != ""
}

// InvalidateBearerToken força a renovação do token na próxima chamada
func (s *Store) InvalidateBearerToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bearerToken = ""
	s.bearerTokenExpiresAt = 0
}

// invalidateBearerToken descarta o token em cache apenas se ele ainda for igual a
// token; um token já renovado por outra chamada é mantido.
func (s *Store) invalidateBearerToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bearerToken != token {
		return false
	}
	s.bearerToken = ""
	s.bearerTokenExpiresAt = 0
	return true
}

// validBearerToken retorna o token em cache se ele vence depois de now+margem
func (s *Store) validBearerToken(now int64) (string, bool) {
	token, expiresAt, ok := s.BearerToken()
	if ok && expiresAt > now+tokenSafetyMargin {
		return token, true
	}
	return "", false
}
