package waiter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
)

// Mutation issues a create, update or delete call.
type Mutation func(ctx context.Context) (*ociapi.Response, error)

// Fetch reads the resource with the given identifier.
type Fetch func(ctx context.Context, id string) (*ociapi.Response, error)

// CreateAndWait issues create and waits for the created resource to reach one
// of states. The resource identifier is the id attribute of the create response.
//
// With no states the create response is returned without fetching. Failures
// after create was accepted are *CompositeOperationError carrying its response.
// cfg.SucceedOnNotFound is ignored, it only applies to DeleteAndWait.
func (w *Waiter) CreateAndWait(ctx context.Context, create Mutation, fetch Fetch, states []string, cfg Config) (*ociapi.Response, error) {
	return w.mutateAndWait(ctx, "create", create, fetch, states, cfg)
}

// UpdateAndWait is CreateAndWait for update calls.
func (w *Waiter) UpdateAndWait(ctx context.Context, update Mutation, fetch Fetch, states []string, cfg Config) (*ociapi.Response, error) {
	return w.mutateAndWait(ctx, "update", update, fetch, states, cfg)
}

func (w *Waiter) mutateAndWait(ctx context.Context, op string, mutate Mutation, fetch Fetch, states []string, cfg Config) (*ociapi.Response, error) {
	opResp, err := mutate(ctx)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return opResp, nil
	}

	id := ""
	if opResp != nil && opResp.Data != nil {
		id = opResp.Data.String("id")
	}
	if id == "" {
		return nil, composite(errors.Errorf("%s response carries no resource identifier", op), opResp)
	}

	// a created or updated resource that vanishes is a failure, not a result.
	cfg.SucceedOnNotFound = false
	w.logger.WithField("id", id).WithField("states", states).Debugf("%s accepted, waiting for state", op)
	resp, err := w.WaitUntil(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return fetch(ctx, id)
	}, LifecycleStateIn(states...), cfg)
	if err != nil {
		return nil, composite(err, opResp)
	}
	return resp, nil
}

// DeleteAndWait reads the resource, issues del and then waits for one of
// states or for the resource to disappear.
//
// The wait re-issues the read made before the delete, since the identifier may
// no longer resolve afterwards. When the resource disappears the delete response
// is returned.
func (w *Waiter) DeleteAndWait(ctx context.Context, id string, fetch Fetch, del Mutation, states []string, cfg Config) (*ociapi.Response, error) {
	snapshot, err := fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	opResp, err := del(ctx)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return opResp, nil
	}

	poll := snapshot.Poll
	if !snapshot.Pollable() {
		poll = func(ctx context.Context) (*ociapi.Response, error) {
			return fetch(ctx, id)
		}
	}

	cfg.SucceedOnNotFound = true
	w.logger.WithField("id", id).WithField("states", states).Debug("delete accepted, waiting for state")
	resp, err := w.WaitUntil(ctx, poll, LifecycleStateIn(states...), cfg)
	if err != nil {
		return nil, composite(err, opResp)
	}
	if resp == nil {
		return opResp, nil
	}
	return resp, nil
}
