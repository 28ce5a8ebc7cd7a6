package walletpay

import "context"

// Network identifies a card network the merchant accepts.
type Network string

const (
	NetworkVisa       Network = "visa"
	NetworkMastercard Network = "mastercard"
	NetworkAmex       Network = "amex"
	NetworkDiscover   Network = "discover"
	NetworkJCB        Network = "jcb"
	NetworkMaestro    Network = "maestro"
	NetworkGirocard   Network = "girocard"
)

// CapabilityProber answers whether the device wallet can authorize payments.
// Implementations bind to the platform wallet API; they must be cheap and
// side-effect free so callers can probe before every attempt.
type CapabilityProber interface {
	// CanMakePayments reports generic wallet availability on this device.
	CanMakePayments(ctx context.Context) bool

	// CanMakePaymentsUsingNetworks reports availability restricted to cards
	// usable on at least one of the given networks.
	CanMakePaymentsUsingNetworks(ctx context.Context, networks []Network) bool
}

// CanAuthorize reports whether an authorization attempt can proceed. It is a
// pure predicate: no wallet state changes, no errors. A nil prober means no
// wallet binding exists, so the answer is false. An empty network list checks
// generic availability only.
func CanAuthorize(ctx context.Context, prober CapabilityProber, networks ...Network) bool {
	if prober == nil {
		return false
	}
	if len(networks) == 0 {
		return prober.CanMakePayments(ctx)
	}
	return prober.CanMakePaymentsUsingNetworks(ctx, networks)
}

// StaticProber is a CapabilityProber with fixed answers. It stands in for the
// platform wallet in tests, demos, and environments without a device binding.
type StaticProber struct {
	// Available is the generic wallet answer.
	Available bool

	// Networks limits which networks count as usable. Empty means every
	// network is usable whenever Available is true.
	Networks []Network
}

// CanMakePayments reports the fixed availability answer.
func (p StaticProber) CanMakePayments(ctx context.Context) bool {
	return p.Available
}

// CanMakePaymentsUsingNetworks reports availability when any requested network
// is in the usable set.
func (p StaticProber) CanMakePaymentsUsingNetworks(ctx context.Context, networks []Network) bool {
	if !p.Available {
		return false
	}
	if len(p.Networks) == 0 {
		return true
	}
	usable := make(map[Network]struct{}, len(p.Networks))
	for _, n := range p.Networks {
		usable[n] = struct{}{}
	}
	for _, n := range networks {
		if _, ok := usable[n]; ok {
			return true
		}
	}
	return false
}
