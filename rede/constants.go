package rede

const (
	// Produção
	ProductionURL        = "https://api.userede.com.br/erede"
	OAuthTokenProduction = "https://api.userede.com.br/redelabs/oauth2/token"

	// Sandbox/Homologação
	SandboxURL        = "https://api.userede.com.br/desenvolvedores"
	OAuthTokenSandbox = "https://rl7-sandbox-api.useredecloud.com.br/oauth2/token"
)

// Versões da API
const (
	VersionV1 = "v1"
	VersionV2 = "v2"
)

// Version é a versão do SDK enviada no User-Agent
const Version = "1.0.0"

// Margem de segurança aplicada ao vencimento do bearer token, em segundos
const tokenSafetyMargin = 60

// Métodos HTTP usados pelos serviços
const (
	MethodGet  = "GET"
	MethodPost = "POST"
	MethodPut  = "PUT"
)
