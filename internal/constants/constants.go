package constants

// Centralized constants for headers, env keys, routes and shared log fields.
const (
	// Environment variable keys
	EnvConfigPath = "BREWDUEL_CONFIG"
	EnvDBPath     = "BREWDUEL_DB"
	EnvDebug      = "BREWDUEL_DEBUG"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderPlayerToken   = "X-Player-Token"
	HeaderPlayerName    = "X-Player-Name"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteCards         = "/cards"
	RouteDecks         = "/decks"
	RoutePublicBattles = "/public-battles"
	RouteLeaderboard   = "/leaderboard"
	RoutePlayerStats   = "/player-stats"
	RouteBattles       = "/battles"
	RouteBattlesJoin   = "/battles/join"
	RouteBattleByCode  = "/battles/:battleCode"
	RouteBattleIntent  = "/battles/:battleCode/intent"
	RouteBattleForfeit = "/battles/:battleCode/forfeit"
	RouteVersion       = "/version"
	RouteHealth        = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrInvalidBattleCode    = "Invalid battle code"
	ErrBattleNotFound       = "Battle not found"
	ErrBattleNotInProgress  = "Battle is not in progress"
	ErrBattleAlreadyEnded   = "Battle has already ended"
	ErrBattleFull           = "Battle is full"
	ErrNotYourTurn          = "It is not your turn"
	ErrPlayerNotInBattle    = "Player not in this battle"
	ErrIdentityRequired     = "Player identity required"
	ErrUnknownDeckList      = "Unknown deck list"
	ErrUnknownCategory      = "Unknown card category"
	ErrFailedCreateBattle   = "Failed to create battle"
	ErrFailedUpdateBattle   = "Failed to update battle"
	ErrFailedFetchBattles   = "Failed to fetch battles"
	ErrFailedFetchCards     = "Failed to fetch cards"
	ErrFailedFetchStats     = "Failed to fetch stats"
	ErrFailedFetchBoard     = "Failed to fetch leaderboard"
	ErrFailedStoreIntent    = "Failed to store intent"
	ErrBattleNameExceeds    = "Battle name exceeds 32 characters"
	ErrCannotJoinOwnBattle  = "Cannot join your own battle"
	ErrIntentNotRecognized  = "Intent not recognized"
)

// Shared structured-log field names
const (
	LogFieldBattleID   = "battle_id"
	LogFieldBattleCode = "battle_code"
	LogFieldPlayer     = "player"
	LogFieldTurn       = "turn"
	LogFieldPhase      = "phase"
	LogFieldIntent     = "intent"
	LogFieldCard       = "card"
	LogFieldAddr       = "addr"
)
