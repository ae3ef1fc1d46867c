package main

import (
	"fmt"
	"os"

	"github.com/9seconds/cartographer/chatplugin"
	"github.com/9seconds/cartographer/maplib"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

const version = "1.0.0"

var (
	app = kingpin.New(
		"cartographer",
		"Location, places and directions backend for chat assistants")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("CARTOGRAPHER_DEBUG").
		Bool()

	serveCommand = app.Command("serve", "Run HTTP server.")
	serveConfig  = serveCommand.Arg("config-path", "Path to the hjson config.").
			String()
	serveAPIKey = serveCommand.Flag("api-key", "Google Maps API key.").
			Envar("GOOGLE_MAPS_API_KEY").
			String()
	serveListen = serveCommand.Flag("listen", "host:port to listen on.").
			Short('l').
			Envar("CARTOGRAPHER_LISTEN").
			String()

	whereamiCommand = app.Command("whereami", "Show location of this host.")
	whereamiBackend = backendFlag(whereamiCommand)

	nearbyCommand = app.Command("nearby", "Find places nearby.")
	nearbyBackend = backendFlag(nearbyCommand)
	nearbyQuery   = nearbyCommand.Arg("query", "What to search for (cafe, gas station).").
			Required().
			String()
	nearbyLocation = nearbyCommand.Flag("location", "Where to search. Detected if empty.").
			Short('l').
			String()

	directionsCommand = app.Command("directions", "Get directions between 2 places.")
	directionsBackend = backendFlag(directionsCommand)
	directionsOrigin  = directionsCommand.Arg("origin", "Starting point.").
				Required().
				String()
	directionsDestination = directionsCommand.Arg("destination", "Destination point.").
				Required().
				String()
	directionsMode = directionsCommand.Flag("mode", "Travel mode.").
			Short('m').
			Default(string(maplib.DefaultTravelMode)).
			Enum(string(maplib.TravelModeDriving),
			string(maplib.TravelModeWalking),
			string(maplib.TravelModeBicycling),
			string(maplib.TravelModeTransit))
)

func backendFlag(cmd *kingpin.CmdClause) *string {
	return cmd.Flag("backend", "Base URL of cartographer backend.").
		Short('b').
		Envar("CARTOGRAPHER_BACKEND").
		Default(chatplugin.DefaultBackendURL).
		String()
}

func init() {
	app.Version(version)
}

func main() {
	log := newLogger(os.Stderr, false)

	if err := loadDotenv(); err != nil {
		log.Fatal(err, "Cannot initialize environment")
	}

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	log = newLogger(os.Stderr, *debug)

	ctx, cancel := makeRootContext()
	defer cancel()

	switch command {
	case serveCommand.FullCommand():
		conf, err := parseConfig(afero.NewOsFs(), *serveConfig)
		if err != nil {
			log.Fatal(err, "Cannot read config")
		}

		if *serveAPIKey != "" {
			conf.APIKey = *serveAPIKey
		}

		if *serveListen != "" {
			conf.Listen = *serveListen
		}

		if err := conf.validate(); err != nil {
			log.Fatal(err, "Incorrect configuration")
		}

		if err := runServer(ctx, conf, log); err != nil {
			log.Fatal(err, "Server has crashed")
		}
	case whereamiCommand.FullCommand():
		fmt.Println(newPluginClient(*whereamiBackend).UserLocation(ctx))
	case nearbyCommand.FullCommand():
		answer, err := newPluginClient(*nearbyBackend).FindNearby(ctx, *nearbyQuery, *nearbyLocation)
		if err != nil {
			fmt.Println(chatplugin.RenderError(err))
			os.Exit(1)
		}

		fmt.Print(answer)
	case directionsCommand.FullCommand():
		text, err := newPluginClient(*directionsBackend).Directions(ctx,
			*directionsOrigin, *directionsDestination, maplib.TravelMode(*directionsMode))
		if err != nil {
			fmt.Println(chatplugin.RenderError(err))
			os.Exit(1)
		}

		fmt.Print(text)
	}
}

func newPluginClient(backend string) *chatplugin.Client {
	return chatplugin.NewClient(backend, makeHTTPClient(0))
}
