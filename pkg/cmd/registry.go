// Package cmd provides common initialization for the command-line binaries.
package cmd

import (
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/assignuser"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/createtask"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/generatereport"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/movetostage"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/notification"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/sendemail"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/sendsms"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/actions/updatestatus"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/registry"
)

// NewRegistry registers every builtin action handler. reportBuilder may be
// nil; the generate_report action then only logs its request.
func NewRegistry(logger *slog.Logger, store persistence.Persistence, reportBuilder generatereport.Builder) *registry.Registry {
	reg := registry.NewRegistry(logger)

	if reportBuilder == nil {
		reportBuilder = &generatereport.LogBuilder{Logger: logger}
	}

	reg.RegisterAction(notification.NewFactory(store.Notifications()))
	reg.RegisterAction(createtask.NewFactory(store.Tasks()))
	reg.RegisterAction(assignuser.NewFactory())
	reg.RegisterAction(updatestatus.NewFactory(store.Tasks(), store.Meetings()))
	reg.RegisterAction(movetostage.NewFactory(store.Applications()))
	reg.RegisterAction(sendemail.NewFactory(&sendemail.LogMailer{Logger: logger}))
	reg.RegisterAction(sendsms.NewFactory(&sendsms.LogSender{Logger: logger}))
	reg.RegisterAction(generatereport.NewFactory(reportBuilder))

	return reg
}
