// Package discovery finds Kaleidescape components on the local network.
//
// Components advertise the control protocol over mDNS as a
// _kos_control._tcp service. Browse streams components as they announce
// themselves; Discover collects everything that answers within a timeout;
// Find matches one component by hostname or instance name.
package discovery
