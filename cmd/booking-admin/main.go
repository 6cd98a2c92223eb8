// Command booking-admin runs one booking edit session against the booking store API.
//
//	booking-admin -id 42 -status confirmed -room 101 -paid=true
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-booking/bookingadmin"
	"hotel-booking/bookingapi"
	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/policy"
	"hotel-booking/utils"
)

type options struct {
	apiURL    string
	token     string
	id        uint
	status    string
	room      string
	clearRoom bool
	paid      string
	search    string
	dryRun    bool
	timeout   time.Duration
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var id uint64

	fs := flag.NewFlagSet("booking-admin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.apiURL, "api", config.EnvOrDefault("BOOKING_API_URL", "http://localhost:8080/api"), "booking store API base URL")
	fs.StringVar(&opts.token, "token", os.Getenv("BOOKING_API_TOKEN"), "bearer token for the booking store")
	fs.Uint64Var(&id, "id", 0, "booking id")
	fs.StringVar(&opts.status, "status", "", "new status (pending, confirmed, checked-in, checked-out, completed, cancelled)")
	fs.StringVar(&opts.room, "room", "", "room number to assign")
	fs.BoolVar(&opts.clearRoom, "clear-room", false, "unassign the current room")
	fs.StringVar(&opts.paid, "paid", "", "payment flag (true|false)")
	fs.StringVar(&opts.search, "search", "", "only list candidate rooms matching this term")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the changes without submitting")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if id == 0 {
		return opts, fmt.Errorf("-id is required")
	}
	if opts.clearRoom && opts.room != "" {
		return opts, fmt.Errorf("-room and -clear-room are mutually exclusive")
	}
	opts.id = uint(id)
	return opts, nil
}

func main() {
	log := utils.NewLogger(config.EnvOrDefault("LOG_LEVEL", "warn"), os.Getenv("LOG_FORMAT"))
	log.SetOutput(os.Stderr)

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "booking-admin:", err)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)

	client := bookingapi.New(opts.apiURL, bookingapi.WithToken(opts.token), bookingapi.WithLogger(log))
	code := run(ctx, client, opts, log, os.Stdout)
	cancel()
	stop()
	os.Exit(code)
}

// store is the part of the booking API a session needs.
type store interface {
	bookingadmin.RoomSource
	bookingadmin.BookingUpdater
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
}

func run(ctx context.Context, api store, opts options, log logrus.FieldLogger, out io.Writer) int {
	booking, err := api.GetBooking(ctx, opts.id)
	if err != nil {
		fmt.Fprintf(out, "could not load booking %d: %v\n", opts.id, err)
		return 1
	}

	resolver := bookingadmin.NewResolver(api, log)
	candidates, err := resolver.ForBooking(ctx, *booking)
	if err != nil {
		fmt.Fprintf(out, "warning: %v\n", err)
	}
	candidates = withTypeNames(ctx, api, candidates, log)

	p := bookingadmin.NewPresenter(*booking, candidates)
	defer p.Close()

	printBooking(out, *booking, p, opts.search)

	if err := applyOptions(p, opts); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return 1
	}

	desired := p.State()
	if opts.dryRun {
		if err := policy.Validate(*booking, desired, p.AllCandidates()); err != nil {
			fmt.Fprintf(out, "%s: %s\n", policy.KindOf(err), err)
			return 1
		}
		printChanges(out, policy.Diff(*booking, desired))
		return 0
	}

	coordinator := bookingadmin.NewCoordinator(api,
		bookingadmin.WithRevalidation(resolver),
		bookingadmin.WithCoordinatorLogger(log),
	)
	outcome := coordinator.Submit(ctx, *booking, desired, p.AllCandidates())
	if !outcome.OK {
		fmt.Fprintf(out, "%s: %s\n", outcome.Kind, outcome.Message)
		return 1
	}

	fmt.Fprintln(out, outcome.Message)
	printChanges(out, outcome.Changes)
	return 0
}

// withTypeNames attaches room types the availability answer left out, so
// -search also matches type names.
func withTypeNames(ctx context.Context, api store, rooms []models.Room, log logrus.FieldLogger) []models.Room {
	missing := false
	for _, r := range rooms {
		if r.RoomType == nil {
			missing = true
			break
		}
	}
	if !missing {
		return rooms
	}

	types, err := api.ListRoomTypes(ctx)
	if err != nil {
		log.WithError(err).Warn("could not load room types")
		return rooms
	}
	byID := make(map[uint]models.RoomType, len(types))
	for _, rt := range types {
		byID[rt.ID] = rt
	}

	out := make([]models.Room, len(rooms))
	for i, r := range rooms {
		if rt, ok := byID[r.RoomTypeID]; ok && r.RoomType == nil {
			rt := rt
			r.RoomType = &rt
		}
		out[i] = r
	}
	return out
}

func applyOptions(p *bookingadmin.Presenter, opts options) error {
	if opts.status != "" {
		s, ok := models.ParseBookingStatus(opts.status)
		if !ok {
			return fmt.Errorf("unknown status %q", opts.status)
		}
		if err := p.SetStatus(s); err != nil {
			return err
		}
	}

	switch {
	case opts.clearRoom:
		if err := p.ClearRoom(); err != nil {
			return err
		}
	case opts.room != "":
		if err := p.PickRoomNumber(opts.room); err != nil {
			return fmt.Errorf("room %s: %w", opts.room, err)
		}
	}

	if opts.paid != "" {
		paid, err := strconv.ParseBool(opts.paid)
		if err != nil {
			return fmt.Errorf("-paid: %w", err)
		}
		p.SetPaid(paid)
	}
	return nil
}

func printBooking(out io.Writer, b models.Booking, p *bookingadmin.Presenter, search string) {
	room := b.CurrentRoomNumber()
	if room == "" {
		room = "unassigned"
	}
	paid := "unpaid"
	if b.IsPaid {
		paid = "paid"
	}
	fmt.Fprintf(out, "Booking #%d  %s → %s (%d nights)  %s  room %s  %s  %.2f\n",
		b.ID, utils.FormatDate(b.CheckIn()), utils.FormatDate(b.CheckOut()), b.Nights(),
		b.Status.Label(), room, paid, b.TotalPrice)

	labels := make([]string, 0, 4)
	for _, s := range p.StatusOptions() {
		labels = append(labels, string(s))
	}
	fmt.Fprintf(out, "Status options: %s\n", strings.Join(labels, ", "))

	rooms := bookingadmin.FilterCandidates(p.AllCandidates(), search)
	if len(rooms) == 0 {
		fmt.Fprintln(out, "Available rooms: none")
		return
	}
	numbers := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if name := r.TypeName(); name != "" {
			numbers = append(numbers, fmt.Sprintf("%s (%s)", r.RoomNumber, name))
			continue
		}
		numbers = append(numbers, r.RoomNumber)
	}
	fmt.Fprintf(out, "Available rooms: %s\n", strings.Join(numbers, ", "))
}

func printChanges(out io.Writer, changes []policy.Change) {
	if len(changes) == 0 {
		fmt.Fprintln(out, "No changes")
		return
	}
	for _, ch := range changes {
		fmt.Fprintf(out, "  - %s\n", ch)
	}
}
