package constants

// MinOptionsPerCategory — сколько вариантов в каждой категории нужно
// набрать, чтобы началось голосование.
const MinOptionsPerCategory = 2

// VoteEmoji — палитра реакций для голосования; позиция эмодзи задаёт
// индекс варианта во всех трёх категориях.
var VoteEmoji = []string{"🅰️", "🅱️", "🅾️", "🆎", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣"}

// Placeholder подставляется вместо категории без вариантов.
const Placeholder = "—"

const MsgStartPrivate = "Привет! Добавь меня в групповой чат и напиши `!туса` — соберу планы, устрою голосование и напомню о встрече."

const MsgStartGroup = `Привет! Я помогаю собрать тусу 🎉
*!туса* — начать сбор вариантов
*!статус* — что сейчас происходит
*!тише* / *!громче* — меньше/больше моих подсказок
*!напомни* — про напоминания`

const MsgTusaIntro = `Собираем тусу! 🎉
Кидайте в чат варианты: *когда* (например «завтра в 19:00»), *где* и *в каком формате* (бар, настолки, кино...).
Можно несколько через точку с запятой. Как наберётся по паре вариантов — запущу голосование.`

const MsgAlreadyActive = "Уже есть активная туса. Напиши `!статус`."

const MsgCollectingHint = "Записал 📝 Кидайте ещё варианты!"

const MsgNeedMoreOptions = "Пока мало вариантов. Докиньте ещё 🙂"

const MsgVotingStart = `Голосуем! Жмите реакции на это сообщение 👇

*Когда:*
%s

*Где:*
%s

*Формат:*
%s`

const MsgPlanFixed = `План зафиксирован! 🎉
*Когда:* %s
*Где:* %s
*Формат:* %s`

const MsgReminder = "⏰ Напоминаю про тусу!\n*Когда:* %s\n*Где:* %s\n*Формат:* %s"

const MsgStatus = "Статус тусы: *%s*\n*Когда:* %s\n*Где:* %s\n*Формат:* %s"

const MsgNoActiveTusa = "Сейчас нет активной тусы. Напиши `!туса`, чтобы начать."

const MsgQuietOn = "Окей, буду писать только по делу 🤫"

const MsgQuietOff = "Снова болтаю как обычно 🔊"

const MsgRemindersOn = "Напоминания включены ⏰"

const MsgRemindersOff = "Окей, напоминать не буду."

const MsgRemindersUpdated = "Окей, напомню за %d ч. до тусы ⏰"
