// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Player-facing texts.
const (
	msgWelcomeTitle   = "🏆 <b>Fisica Milionaria</b>"
	msgWelcomeBody    = "Sei pronto a testare la tua conoscenza della fisica?\n15 domande, 3 aiuti, un solo milione."
	msgLoading        = "⏳ Sto generando le domande di fisica..."
	msgSuspense       = "🤔 Risposta bloccata... vediamo se è quella giusta!"
	msgCorrect        = "✅ Risposta esatta!"
	msgWrong          = "❌ Risposta sbagliata."
	msgTimeUp         = "⏰ Tempo scaduto!"
	msgGameOverTitle  = "🎬 <b>Partita terminata!</b>"
	msgWinTitle       = "🎉 <b>HAI VINTO UN MILIONE!</b>"
	msgNoReplacement  = "Nessuna domanda di riserva disponibile: l'aiuto è stato comunque consumato."
	msgLifelineUsed   = "Hai già usato questo aiuto."
	msgNotPlaying     = "Questa azione è disponibile solo durante la partita."
	msgStartFailed    = "Non riesco a preparare la partita, riprova più tardi."
	msgInternalError  = "Qualcosa è andato storto. Riprova più tardi."
	msgUnknownCommand = "Comando sconosciuto. Comandi disponibili:\n\n/gioca — inizia una partita\n/record — vittorie totali\n/impostazioni — impostazioni\n/aiuto — aiuto"
	msgHelp           = "🎮 <b>Come si gioca</b>\n\nScala di 15 domande di fisica a valore crescente, con traguardi sicuri a €1.000 e €32.000.\n\nAiuti, uno per partita:\n• 50:50 — elimina due risposte sbagliate\n• 📞 Telefonata — un amico suggerisce una risposta\n• 🔄 Cambio — sostituisce la domanda corrente\n\n/gioca per iniziare."
	msgResetArmed     = "⚠️ Confermi l'azzeramento del record? La richiesta scade tra 10 secondi."
	msgResetDone      = "Record azzerato."
	msgResetExpired   = "La richiesta di azzeramento è scaduta."
)

// answerPrefixes label the four answer buttons.
var answerPrefixes = []string{"A", "B", "C", "D"}

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
