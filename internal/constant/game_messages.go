package constant

const (
	MsgWon       = "Parabéns! Você adivinhou o personagem: %s!"
	MsgExhausted = "Suas tentativas acabaram! O personagem era: %s."

	MsgConnected        = "Conectado à sessão %s."
	MsgSessionNotFound  = "Sessão de jogo não encontrada."
	MsgForbidden        = "Você não tem permissão para enviar mensagens para esta sessão."
	MsgSessionCompleted = "Este jogo já terminou. Inicie um novo jogo."
	MsgGameNotStarted   = "O jogo ainda não começou."
	MsgAlreadyStarted   = "Este jogo já foi iniciado."
	MsgStartFailed      = "Erro ao iniciar o jogo: %s"
	MsgReplyFailed      = "Erro ao processar sua mensagem com a IA: %s"
	MsgInternalError    = "Erro interno ao processar a sessão."
)
