package cnst

// Role is the stored users.role value
type Role string

const (
	RoleUser   Role = "user"
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// UserType is the stored users.user_type value
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeClient  UserType = "client"
)

// Ledger sources
const (
	ProcessorManual = "manual"
	ProcessorPayPal = "paypal"
)

// Booking origins, used as metric and log labels
const (
	OriginAdmin  = "admin"
	OriginClient = "client"
)

// Redis deployment kinds
const (
	RedisClusterTypeSingle   = "single"
	RedisClusterTypeSentinel = "sentinel"
	RedisClusterTypeCluster  = "cluster"
)
