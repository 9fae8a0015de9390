// Package lib holds integrations that do not fit strictly into the
// handler/service/repository layers: the Resend e-mail client (email)
// and the asynq background job worker (job).
package lib
