// Cartographer is a backend which helps chat assistants to answer
// questions like "where am I", "where is the nearest cafe" and "how do
// I get there".
//
// It does not know anything about maps itself. Instead it proxies
// requests to ip-api.com and Google Maps and reshapes their responses
// into something simple enough for a language model or a chat plugin.
//
// Tool itself is organized into 3 logical parts:
//
// Maplib
//
// maplib is a main package of the application which contains
// Cartographer struct: location resolver with a short living cache,
// places finder and directions finder. It has its own API and can act
// as http.Handler.
//
// Providers
//
// This package has implementations of upstreams: ip-api.com geolocator
// and Google Maps client.
//
// Chatplugin
//
// A client of cartographer HTTP API which renders responses as
// markdown for chat users.
//
// A main package itself wires everything together. Resulting binary
// either starts http server or acts as a command line client of the
// running one.
package main
