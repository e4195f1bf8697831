// Package rede implementa o SDK da API e.Rede (adquirência de cartões da Rede).
//
// Este pacote implementa:
//   - Ambientes de produção e sandbox (Environment)
//   - Credenciais do estabelecimento e cache do bearer token (Store)
//   - Dados de autenticação 3-D Secure (ThreeDSecure)
//   - Criação, captura, consulta e cancelamento de transações (Client)
//
// # Autenticação
//
// A API e.Rede usa OAuth2 client_credentials. O Client obtém o token com
// Basic Auth (filiação:chave de integração) e o guarda no Store até 60
// segundos antes do vencimento. Você precisa:
//   - Filiação (PV) do estabelecimento
//   - Chave de integração (gerada no portal Use Rede)
//
// # Início Rápido
//
// Criar o cliente:
//
//	store := rede.NewStore("12345678", "chave-de-integracao", rede.Sandbox())
//	client := rede.NewClient(store, rede.WithLogger(logger))
//
// Autorizar e capturar uma transação de crédito:
//
//	tx := rede.NewTransaction(2099, "pedido-123").
//	    CreditCard("5448280000000007", "235", 12, 2030, "Fulano de Tal")
//
//	result, err := client.Create(ctx, tx)
//	if err != nil {
//	    return err
//	}
//	log.Printf("tid=%s retorno=%s", result.Tid, result.ReturnMessage)
//
// Autorizar agora e capturar depois:
//
//	auth, err := client.Authorize(ctx, tx)
//	...
//	_, err = client.Capture(ctx, auth.Tid, 2099)
//
// # 3-D Secure
//
//	tx.ThreeDSecure = rede.NewThreeDSecure(true, rede.OnFailureDecline, r.UserAgent())
//	if err := tx.ThreeDSecure.SetThreeDIndicator("2"); err != nil {
//	    return err
//	}
//	tx.AddURL(rede.URLKindThreeDSecureSuccess, "https://loja.com/3ds/ok")
//
// Se result.RequiresAuthentication(), redirecione o portador para
// result.ThreeDSecure.URL.
//
// # Tratamento de Erros
//
// O pacote fornece erros tipados para condições comuns:
//
//	if rede.IsOAuthError(err) {
//	    // Credenciais inválidas ou falha no endpoint de token
//	}
//	var apiErr *rede.APIError
//	if errors.As(err, &apiErr) {
//	    // apiErr.ReturnCode / apiErr.ReturnMessage
//	}
//
// # Documentação da API
//
// Para mais detalhes, consulte a documentação oficial:
// https://developer.userede.com.br/e-rede
package rede
