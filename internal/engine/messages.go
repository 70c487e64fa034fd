package engine

import "github.com/campuscalm/brain/internal/classify"

// Scripted reply tables. The Portuguese texts are the product's canonical
// voice; English mirrors them for detected English conversations.

var fallbackReplies = map[classify.Locale][]string{
	classify.LocalePT: {
		"Estou aqui com você. Quer me contar um pouco mais sobre isso?",
		"Entendi. Me fala um pouco mais para eu poder te ajudar melhor.",
	},
	classify.LocaleEN: {
		"I'm here with you. Want to tell me a bit more about it?",
		"Got it. Tell me a little more so I can help you better.",
	},
}

var greetingReplies = map[classify.Locale][]string{
	classify.LocalePT: {
		"Oi! Como você está se sentindo hoje?",
		"Olá! Bom te ver por aqui. Como estão os estudos?",
		"Oi! Estou por aqui se precisar de qualquer coisa.",
	},
	classify.LocaleEN: {
		"Hi! How are you feeling today?",
		"Hello! Good to see you here. How are your studies going?",
	},
}

var stressRepeatReplies = map[classify.Locale][]string{
	classify.LocalePT: {
		"Percebo que isso está se repetindo. Quer me contar um pouco mais do que está pesando?",
		"Notei que isso voltou a aparecer. Vamos escolher um passo pequeno para aliviar agora?",
		"Entendi. Isso tem se repetido. Quer que eu te ajude a reduzir a carga em 1 prioridade?",
	},
	classify.LocaleEN: {
		"I notice this keeps coming back. Want to tell me a bit more about what's weighing on you?",
		"This showed up again. Shall we pick one small step to ease it right now?",
	},
}

var evolutionRepeatReplies = map[classify.Locale][]string{
	classify.LocalePT: {
		"Você está criando consistência. Quer definir a próxima meta pequena?",
		"Isso é repetição do bem: consistência. Qual a próxima etapa simples?",
		"Você está mantendo um bom ritmo. Quer escolher um objetivo de 15 minutos agora?",
	},
	classify.LocaleEN: {
		"You're building consistency. Want to set the next small goal?",
		"You're keeping a good rhythm. Pick a 15-minute goal for now?",
	},
}

var stressToEvolutionReplies = map[classify.Locale][]string{
	classify.LocalePT: {
		"Olha o progresso aí. Ontem parecia pesado e hoje você avançou.",
		"Dá para ver evolução. Mesmo com desafios recentes, você conseguiu avançar.",
		"Isso é um bom sinal: você saiu do peso e foi para a ação. Parabéns pelo passo.",
	},
	classify.LocaleEN: {
		"Look at that progress. Yesterday felt heavy and today you moved forward.",
		"That's a good sign: you went from the weight straight into action. Well done.",
	},
}

var stressAnxietyReplies = map[classify.Locale][]string{
	classify.LocalePT: {
		"Ansiedade antes de prova é comum. Quer que eu te guie por 60 segundos para acalmar o corpo?",
		"Entendi. Vamos reduzir a ansiedade agora: respira devagar e me diz de 0 a 10 como está.",
		"Você não está sozinho nisso. Vamos focar no que está sob controle: qual assunto você revisou melhor?",
		"Se a ansiedade estiver alta, a meta agora é estabilizar. Quer uma técnica rápida de aterramento (5-4-3-2-1)?",
	},
	classify.LocaleEN: {
		"Anxiety before an exam is common. Want me to guide you for 60 seconds to calm your body down?",
		"Got it. Let's lower the anxiety now: breathe slowly and tell me how you feel from 0 to 10.",
		"You're not alone in this. Let's focus on what's under control: which topic did you review best?",
	},
}

var shortDirectionMain = map[classify.Locale]string{
	classify.LocalePT: "Você já revisou tudo. O que está acontecendo agora não é falta de preparo, é ansiedade falando alto.\n" +
		"Vamos fazer o seguinte: pare por 1 minuto e respire mais lento do que o normal.\n" +
		"Depois disso, escolha só 1 tópico que você domina e relembre mentalmente como explicaria ele para alguém.\n" +
		"Seu corpo vai entender que você está no controle.",
	classify.LocaleEN: "You've already reviewed everything. What's happening now isn't lack of preparation, it's anxiety speaking loudly.\n" +
		"Here's what we'll do: stop for 1 minute and breathe slower than usual.\n" +
		"Then pick just 1 topic you know well and mentally walk through how you'd explain it to someone.\n" +
		"Your body will understand you're in control.",
}

var shortDirectionOK = map[classify.Locale][]string{
	classify.LocalePT: {"Ótimo. Agora é executar. Você já fez sua parte."},
	classify.LocaleEN: {"Great. Now go execute. You've already done your part."},
}

var shortDirectionBody = map[classify.Locale][]string{
	classify.LocalePT: {
		"Se ainda está forte, é o corpo pedindo regulação.\n" +
			"Levanta, movimenta os ombros, dá alguns saltos leves e respira mais lento por 1 minuto.\n" +
			"Depois começa pela questão mais simples.\n" +
			"Você já fez o trabalho. Agora é executar.",
	},
	classify.LocaleEN: {
		"If it's still strong, that's your body asking for regulation.\n" +
			"Stand up, roll your shoulders, do a few light jumps and breathe slower for 1 minute.\n" +
			"Then start with the simplest question.\n" +
			"You've done the work. Now go execute.",
	},
}

const shieldMenuPT = "Vou te ajudar a encontrar o caminho. Me diz qual dessas opções está mais perto do que você sente agora:\n" +
	"• ansiedade\n• desmotivação\n• dúvida\n• cansaço"

const shieldMenuEN = "Let me help you find the way. Tell me which of these is closest to how you feel right now:\n" +
	"• anxiety\n• no motivation\n• doubt\n• tiredness"

var shieldMenus = map[classify.Locale]string{
	classify.LocalePT: shieldMenuPT,
	classify.LocaleEN: shieldMenuEN,
}

var shieldNudges = map[classify.Locale]string{
	classify.LocalePT: "Pode me dizer com uma palavra o que está sentindo agora?",
	classify.LocaleEN: "Can you tell me in one word how you're feeling right now?",
}

// Shielding choice labels mapped straight to category slugs, both locales.
var shieldChoices = map[string]string{
	"ansiedade":     slugStress,
	"anxiety":       slugStress,
	"desmotivacao":  slugDemotivation,
	"no motivation": slugDemotivation,
	"duvida":        slugDoubt,
	"doubt":         slugDoubt,
	"cansaco":       slugMentalFatigue,
	"tiredness":     slugMentalFatigue,
}

// Keywords reused by the anxiety+exam special case and the short-direction
// context test, same lists the original trigger data carries.
var anxietyKeywords = []string{
	"ansioso", "ansiosa", "ancioso", "anciosa", "ansiedade", "nervoso",
	"nervosa", "panico", "taquicardia", "tremendo", "tremor", "suando",
	"suor", "apreensivo", "apreensiva", "anxious", "anxiety", "panic",
}

var examKeywords = []string{
	"prova", "teste", "exame", "apresentacao", "seminario", "avaliacao",
	"banca", "trabalho", "entrega", "exam", "test", "presentation",
}

// Terse "what do I do" patterns that open the short-direction dialogue.
var shortDirectionPatterns = []string{
	"o que eu faco", "o que faco", "que que eu faco", "e agora", "faco o que",
	"o que fazer", "nao sei o que fazer", "what do i do", "what should i do",
	"what now",
}

var positiveClosurePhrases = []string{
	"ok", "okay", "certo", "beleza", "entendi", "consegui", "deu certo",
	"fiz", "feito", "vou fazer", "melhorou", "ja estou melhor", "done",
	"did it", "better now", "got it",
}

var negativeClosurePhrases = []string{
	"nao", "nao deu", "nao consigo", "nao consegui", "continua", "continuo",
	"piorou", "ainda", "ainda nao", "segue igual", "no", "still", "worse",
	"cant", "didnt work",
}

// Built-in English renderings for the stock micro-interventions, so an
// English conversation gets translated exercises. Unknown names pass through.
var interventionTranslations = map[string]InterventionPayload{
	"Respiração 4-7-8": {
		Name: "4-7-8 breathing",
		Text: "Breathe in for 4 seconds, hold for 7 and release for 8. Repeat 3 times.",
	},
	"Pausa de 2 minutos": {
		Name: "2-minute break",
		Text: "Stand up, stretch your shoulders and drink a glass of water before coming back.",
	},
	"Aterramento 5-4-3-2-1": {
		Name: "5-4-3-2-1 grounding",
		Text: "Notice 5 things you see, 4 you touch, 3 you hear, 2 you smell and 1 you taste.",
	},
}

func localized(table map[classify.Locale][]string, locale classify.Locale) []string {
	if variants, ok := table[locale]; ok && len(variants) > 0 {
		return variants
	}
	return table[classify.LocalePT]
}
