package session

import (
	zkr "github.com/zalando/go-keyring"
)

// VerifyAuth always reports success. The upstream CLI keeps its own
// credentials in the OS keychain and only exercises them when actually
// invoked; introspecting the keychain ahead of time would not change
// whether a real call succeeds, so auth errors are deferred to the first
// subprocess invocation rather than surfaced here.
func VerifyAuth() error {
	return nil
}

// keychainAvailable probes whether the OS keychain backend is usable,
// mirroring the zalando/go-keyring Available() probe pattern. It exists
// for diagnostics only; VerifyAuth does not consult it.
func keychainAvailable() bool {
	const service, account = "agentcli-bridge-probe", "probe"
	if err := zkr.Set(service, account, "ok"); err != nil {
		return false
	}
	_ = zkr.Delete(service, account)
	return true
}

// KeychainStatus reports whether the OS keychain is usable on this host.
// It is a diagnostic helper; no request path or endpoint calls it.
func KeychainStatus() bool {
	return keychainAvailable()
}
