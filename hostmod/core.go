package hostmod

import (
	"context"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wasicap/wasicap/guestmem"
	"github.com/wasicap/wasicap/wasi"
	"github.com/wasicap/wasicap/wasierr"
)

// CoreModule is the import namespace of the core host calls.
const CoreModule = "wasi_snapshot_preview1"

const (
	clockRealtime  = 0
	clockMonotonic = 1
)

const errnoSuccess = uint32(wasierr.ErrnoSuccess)

func errno(err error) uint32 {
	return uint32(wasierr.ToErrno(err))
}

// InstantiateCore registers the context-backed core host calls on r: the
// argument and environment vector queries, the randomness source, and the
// clock reads. File and socket syscalls are a separate adapter's concern.
func InstantiateCore(ctx context.Context, r wazero.Runtime, wc *wasi.Ctx) (api.Module, error) {
	log := wc.Logger()
	b := r.NewHostModuleBuilder(CoreModule)

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		argvPtr, argvBufPtr uint32) uint32 {
		log.Debug("args_get", zap.Uint32("argv", argvPtr), zap.Uint32("argv_buf", argvBufPtr))
		v := guestmem.New(mod.Memory())
		return errno(wc.Args().WriteToGuest(v, argvPtr, argvBufPtr))
	}).Export("args_get")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		argcPtr, argvBufSizePtr uint32) uint32 {
		log.Debug("args_sizes_get")
		v := guestmem.New(mod.Memory())
		if err := v.WriteUint32(argcPtr, wc.Args().Count()); err != nil {
			return errno(err)
		}
		return errno(v.WriteUint32(argvBufSizePtr, wc.Args().ByteSize()))
	}).Export("args_sizes_get")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		environPtr, environBufPtr uint32) uint32 {
		log.Debug("environ_get")
		v := guestmem.New(mod.Memory())
		return errno(wc.Env().WriteToGuest(v, environPtr, environBufPtr))
	}).Export("environ_get")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		environcPtr, environBufSizePtr uint32) uint32 {
		log.Debug("environ_sizes_get")
		v := guestmem.New(mod.Memory())
		if err := v.WriteUint32(environcPtr, wc.Env().Count()); err != nil {
			return errno(err)
		}
		return errno(v.WriteUint32(environBufSizePtr, wc.Env().ByteSize()))
	}).Export("environ_sizes_get")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		bufPtr, bufLen uint32) uint32 {
		log.Debug("random_get", zap.Uint32("buf", bufPtr), zap.Uint32("buf_len", bufLen))
		v := guestmem.New(mod.Memory())
		region, err := v.Bytes(bufPtr, bufLen)
		if err != nil {
			return errno(err)
		}
		if _, err := io.ReadFull(wc.Random(), region); err != nil {
			return uint32(wasierr.ErrnoIO)
		}
		return errnoSuccess
	}).Export("random_get")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		id uint32, precision uint64, resultPtr uint32) uint32 {
		log.Debug("clock_time_get", zap.Uint32("id", id), zap.Uint64("precision", precision))
		v := guestmem.New(mod.Memory())
		var now uint64
		switch id {
		case clockRealtime:
			now = uint64(wc.Clocks().WallNow().UnixNano())
		case clockMonotonic:
			now = uint64(wc.Clocks().MonotonicNow().Nanoseconds())
		default:
			return uint32(wasierr.ErrnoInval)
		}
		return errno(v.WriteUint64(resultPtr, now))
	}).Export("clock_time_get")

	return b.Instantiate(ctx)
}
