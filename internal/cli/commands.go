/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/internal/calendar"
	"dirpx.dev/errboundary/internal/config"
	"dirpx.dev/errboundary/internal/server"
	"dirpx.dev/errboundary/mapper"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedules in booking order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schedules, err := a.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, renderTable(schedules))
			return err
		},
	}
}

func (a *app) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add SUBJECT START END",
		Short:   "Book a schedule",
		Example: "  schedule add standup 2024-03-01T09:00:00 2024-03-01T09:15:00",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := calendar.ParseTime(args[1])
			if err != nil {
				return err
			}
			end, err := calendar.ParseTime(args[2])
			if err != nil {
				return err
			}
			added, err := a.svc.Add(cmd.Context(), args[0], start, end)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "schedule #%d added\n", added.ID)
			return err
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	var ignoreMissing bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Cancel a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errboundary.Errorf("invalid schedule id %q", args[0])
			}
			err = a.svc.Delete(cmd.Context(), id)
			if ignoreMissing && calendar.NotFound.Is(err) {
				_, err = fmt.Fprintf(a.out, "schedule #%d does not exist, nothing to delete\n", id)
				return err
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "schedule #%d deleted\n", id)
			return err
		},
	}
	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "succeed when the schedule does not exist")
	return cmd
}

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar over HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := mapper.New()
			if err != nil {
				return errboundary.Wrap(err, "build status mapper")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, server.Config{
				HTTPAddr: a.cfg.HTTP.Addr,
				GRPCAddr: a.cfg.GRPC.Addr,
			}, a.svc, m, a.logger)
		},
	}
	cmd.Flags().String("http", "", "HTTP listen address, empty to disable")
	cmd.Flags().String("grpc", "", "gRPC listen address, empty to disable")
	_ = a.v.BindPFlag(config.KeyHTTPAddr, cmd.Flags().Lookup("http"))
	_ = a.v.BindPFlag(config.KeyGRPCAddr, cmd.Flags().Lookup("grpc"))
	return cmd
}
