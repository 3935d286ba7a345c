package bank

import (
	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// DefaultQuestions returns the built-in question set used to seed an empty
// bank and as the fallback when the remote provider is unavailable. A fresh
// copy is returned on every call.
func DefaultQuestions() []entities.Question {
	qs := []entities.Question{
		{
			Text:          "Quale principio afferma che un corpo immerso in un fluido riceve una spinta verso l'alto pari al peso del fluido spostato?",
			Answers:       []string{"Principio di Pascal", "Principio di Archimede", "Legge di Stevino", "Teorema di Bernoulli"},
			CorrectAnswer: "Principio di Archimede",
			Difficulty:    entities.DifficultyEasy,
		},
		{
			Text:          "Qual è l'unità di misura della forza nel Sistema Internazionale?",
			Answers:       []string{"Joule", "Watt", "Newton", "Pascal"},
			CorrectAnswer: "Newton",
			Difficulty:    entities.DifficultyEasy,
		},
		{
			Text:          "Quanto vale approssimativamente l'accelerazione di gravità sulla superficie terrestre?",
			Answers:       []string{"9,81 m/s²", "6,67 m/s²", "3,00 m/s²", "12,5 m/s²"},
			CorrectAnswer: "9,81 m/s²",
			Difficulty:    entities.DifficultyEasy,
		},
		{
			Text:          "Quale grandezza fisica si misura in kelvin?",
			Answers:       []string{"La pressione", "La temperatura", "La carica elettrica", "L'intensità luminosa"},
			CorrectAnswer: "La temperatura",
			Difficulty:    entities.DifficultyEasy,
		},
		{
			Text:          "Secondo la seconda legge di Newton, la forza è il prodotto della massa per quale grandezza?",
			Answers:       []string{"La velocità", "L'accelerazione", "La quantità di moto", "L'energia cinetica"},
			CorrectAnswer: "L'accelerazione",
			Difficulty:    entities.DifficultyMediumHard,
		},
		{
			Text:          "Quale legge lega la differenza di potenziale, la corrente e la resistenza in un conduttore ohmico?",
			Answers:       []string{"Legge di Faraday", "Legge di Ohm", "Legge di Ampère", "Legge di Coulomb"},
			CorrectAnswer: "Legge di Ohm",
			Difficulty:    entities.DifficultyMediumHard,
		},
		{
			Text:          "In un moto armonico semplice, in quale punto la velocità è massima?",
			Answers:       []string{"Agli estremi dell'oscillazione", "Nel punto di equilibrio", "A un quarto dell'ampiezza", "La velocità è costante"},
			CorrectAnswer: "Nel punto di equilibrio",
			Difficulty:    entities.DifficultyMediumHard,
		},
		{
			Text:          "Quale trasformazione termodinamica avviene a temperatura costante?",
			Answers:       []string{"Isobara", "Isocora", "Isoterma", "Adiabatica"},
			CorrectAnswer: "Isoterma",
			Difficulty:    entities.DifficultyMediumHard,
		},
		{
			Text:          "Quale legge descrive la rifrazione della luce al passaggio tra due mezzi trasparenti?",
			Answers:       []string{"Legge di Snell", "Legge di Malus", "Legge di Brewster", "Principio di Huygens"},
			CorrectAnswer: "Legge di Snell",
			Difficulty:    entities.DifficultyMediumHard,
		},
		{
			Text:          "Che cosa stabilisce il teorema di Gauss per il campo elettrico?",
			Answers:       []string{"Il flusso attraverso una superficie chiusa è proporzionale alla carica interna", "Il campo elettrico è sempre conservativo", "La circuitazione del campo è nulla su ogni percorso", "Le linee di campo sono sempre chiuse"},
			CorrectAnswer: "Il flusso attraverso una superficie chiusa è proporzionale alla carica interna",
			Difficulty:    entities.DifficultyVeryHard,
		},
		{
			Text:          "Quale fenomeno dimostra la natura ondulatoria degli elettroni?",
			Answers:       []string{"L'effetto fotoelettrico", "La diffrazione di Davisson-Germer", "L'effetto Compton", "La radiazione di corpo nero"},
			CorrectAnswer: "La diffrazione di Davisson-Germer",
			Difficulty:    entities.DifficultyVeryHard,
		},
		{
			Text:          "Nella relatività ristretta, cosa accade alla lunghezza di un corpo in moto rispetto a un osservatore?",
			Answers:       []string{"Aumenta nella direzione del moto", "Si contrae nella direzione del moto", "Resta invariata", "Si contrae in ogni direzione"},
			CorrectAnswer: "Si contrae nella direzione del moto",
			Difficulty:    entities.DifficultyVeryHard,
		},
		{
			Text:          "Quale quantità si conserva in un urto perfettamente anelastico?",
			Answers:       []string{"L'energia cinetica", "La quantità di moto", "Entrambe", "Nessuna delle due"},
			CorrectAnswer: "La quantità di moto",
			Difficulty:    entities.DifficultyVeryHard,
		},
		{
			Text:          "Da che cosa dipende il rendimento massimo di una macchina termica di Carnot?",
			Answers:       []string{"Solo dalle temperature delle due sorgenti", "Dal tipo di gas che compie il ciclo", "Dalla pressione massima raggiunta nel ciclo", "Dal calore totale assorbito"},
			CorrectAnswer: "Solo dalle temperature delle due sorgenti",
			Difficulty:    entities.DifficultyVeryHard,
		},
		{
			Text:          "Qual è il significato fisico del principio di indeterminazione di Heisenberg?",
			Answers:       []string{"Ogni misura perturba il sistema in modo prevedibile", "Posizione e quantità di moto non sono simultaneamente determinabili con precisione arbitraria", "L'energia non si conserva su tempi brevi", "Gli stati quantistici non possono essere sovrapposti"},
			CorrectAnswer: "Posizione e quantità di moto non sono simultaneamente determinabili con precisione arbitraria",
			Difficulty:    entities.DifficultyExpert,
		},
		{
			Text:          "Quale equazione descrive l'evoluzione temporale della funzione d'onda non relativistica?",
			Answers:       []string{"L'equazione di Dirac", "L'equazione di Schrödinger", "L'equazione di Klein-Gordon", "Le equazioni di Maxwell"},
			CorrectAnswer: "L'equazione di Schrödinger",
			Difficulty:    entities.DifficultyExpert,
		},
		{
			Text:          "Che cosa afferma il teorema di Noether?",
			Answers:       []string{"A ogni simmetria continua corrisponde una quantità conservata", "L'entropia di un sistema isolato non può diminuire", "Le equazioni del moto derivano dal principio di minima azione", "I campi quantistici hanno energia di punto zero"},
			CorrectAnswer: "A ogni simmetria continua corrisponde una quantità conservata",
			Difficulty:    entities.DifficultyExpert,
		},
		{
			Text:          "Quale statistica seguono i fotoni?",
			Answers:       []string{"Statistica di Fermi-Dirac", "Statistica di Bose-Einstein", "Statistica di Maxwell-Boltzmann", "Statistica di Poisson"},
			CorrectAnswer: "Statistica di Bose-Einstein",
			Difficulty:    entities.DifficultyExpert,
		},
	}

	out := make([]entities.Question, len(qs))
	copy(out, qs)
	return out
}
