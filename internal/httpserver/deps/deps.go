package deps

import (
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/content"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
	"github.com/MrSnakeDoc/ldsnotes/internal/notes"
	"github.com/MrSnakeDoc/ldsnotes/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	Notes        *notes.Service   // annotation search and assembly
	Content      *content.Client  // raw content views
	Sessions     store.TokenStore // session id -> notes token
	StoreMode    string           // "memory" | "redis", reported by readyz
	DefaultToken string           // used when a request carries no session id
	SessionTTL   time.Duration
	AllowedHosts []string // Host headers allowed on the session routes
	AllowedCIDRS []string // IPs allowed to access readyz
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateBurst    int      // per-IP burst on /api
	RatePerMin   int      // per-IP refill on /api
}
