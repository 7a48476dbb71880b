package subscription

import (
	"fmt"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Command names of the host command surface.
const (
	CommandStart                           = "start"
	CommandSetLocation                     = "setLocation"
	CommandRemoveLocation                  = "removeLocation"
	CommandGetLocation                     = "getLocation"
	CommandQueryAtLocation                 = "queryAtLocation"
	CommandQueryAtLocationWithData         = "queryAtLocationWithData"
	CommandStopListener                    = "stopListener"
	CommandRemoveGeoQueryEventListener     = "removeGeoQueryEventListener"
	CommandRemoveGeoQueryDataEventListener = "removeGeoQueryDataEventListener"
)

// CommandNames lists the commands a host maps onto Bridge methods. Hosts
// answer any other name with ErrNotImplemented.
var CommandNames = []string{
	CommandStart,
	CommandSetLocation,
	CommandRemoveLocation,
	CommandGetLocation,
	CommandQueryAtLocation,
	CommandQueryAtLocationWithData,
	CommandStopListener,
	CommandRemoveGeoQueryEventListener,
	CommandRemoveGeoQueryDataEventListener,
}

// Location result fields.
const (
	ResultLatitude  = "lat"
	ResultLongitude = "lng"
	ResultError     = "error"
)

// LocationResult converts a GetLocation completion into the getLocation
// command result: {lat, lng} on success, {error} otherwise.
func LocationResult(loc envelope.Location, err error) map[string]any {
	if err != nil {
		return map[string]any{ResultError: err.Error()}
	}
	return map[string]any{
		ResultLatitude:  loc.Latitude,
		ResultLongitude: loc.Longitude,
	}
}

// KindForCommand returns the listener kind a query or detach command acts on.
func KindForCommand(name string) (Kind, error) {
	switch name {
	case CommandQueryAtLocation, CommandRemoveGeoQueryEventListener:
		return KindKeyEvents, nil
	case CommandQueryAtLocationWithData, CommandRemoveGeoQueryDataEventListener:
		return KindDataEvents, nil
	default:
		return 0, fmt.Errorf("%w: no listener kind for command %q", ErrNotImplemented, name)
	}
}
