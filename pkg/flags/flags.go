package flags

const (
	Config = "config"

	RPC_URL      = "rpc.url"
	RPC_User     = "rpc.user"
	RPC_Password = "rpc.password"
	RPC_Timeout  = "rpc.timeout"

	Chain = "chain"

	Log_Level  = "log.level"
	Log_Format = "log.format"

	Web_Addr = "web.addr"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. RPCDECODE_RPC_URL.
const EnvPrefix = "RPCDECODE"
