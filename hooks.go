package reactium

// Well-known hook names dispatched by the framework during its lifecycle.
// Plugins and application code may attach to any of these; they may also
// define their own names; the dispatch engine treats all names alike.
const (
	// HookBeforeConfig fires before the boot configuration is resolved.
	// Params: none. Context values may be read by after-config subscribers.
	HookBeforeConfig = "before-config"

	// HookAfterConfig fires after the boot configuration is resolved.
	// Params: *Config (mutable, in-place enrichment allowed).
	HookAfterConfig = "after-config"

	// HookInit fires once per boot, after configuration and before plugins.
	HookInit = "init"

	// HookPluginInit fires after every plugin's Register has run.
	HookPluginInit = "plugin-init"

	// HookPluginReady fires after plugin-init completes.
	HookPluginReady = "plugin-ready"

	// HookPluginUnregister fires before a plugin's hooks are torn down.
	// Params: plugin name (string).
	HookPluginUnregister = "plugin-unregister"

	// HookRoutesInit fires during server build.
	// Params: *route.Table (mutable, in-place enrichment allowed).
	HookRoutesInit = "routes-init"

	// HookRegisterRoute fires once per route as the table is mounted.
	// Params: route.Route.
	HookRegisterRoute = "register-route"

	// HookServerMiddleware fires during server build, before Server.Init.
	// Params: *registry.Registry[func(http.Handler) http.Handler].
	HookServerMiddleware = "Server.Middleware"

	// HookServerInit fires during server build with the raw router.
	// Params: chi.Router.
	HookServerInit = "Server.Init"

	// HookPulseFired fires after a pulse task completes a run.
	// Params: task id (string), completed run count (int).
	HookPulseFired = "pulse-fired"

	// HookPulseExhausted fires when a pulse task run fails every attempt.
	// Params: task id (string), last error.
	HookPulseExhausted = "pulse-exhausted"

	// HookCacheExpired fires when a cache entry is evicted by TTL.
	// Params: key (string), expired value.
	HookCacheExpired = "cache-expired"
)
