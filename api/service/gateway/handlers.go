package gateway

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/harmony-one/btcdash/internal/apierr"
	"github.com/harmony-one/btcdash/internal/utils"
)

const welcome = "Welcome!"

// apiFunc answers a request with a value to encode, or with an error.
type apiFunc func(r *http.Request) (interface{}, error)

func (s *Service) newRouter() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, "NotFound", "no endpoint at "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method+" is not allowed")
	})

	router.Path("/").HandlerFunc(s.welcome).Methods(http.MethodGet)
	router.Path(PathPrefix).HandlerFunc(s.welcome).Methods(http.MethodGet)

	api := router.PathPrefix(PathPrefix).Subrouter()
	api.Path("/").HandlerFunc(s.welcome).Methods(http.MethodGet)
	api.Path("/dashboard").Handler(s.handle("dashboard", s.getDashboard)).Methods(http.MethodGet)
	api.Path("/getblockcount").Handler(s.handle("getblockcount", s.getBlockCount)).Methods(http.MethodGet)
	api.Path("/getblockstats").Handler(s.handle("getblockstats", s.getBlockStats)).Methods(http.MethodGet)
	api.Path("/getblockstats/{" + paramHashOrHeight + "}").Handler(s.handle("getblockstats", s.getBlockStats)).Methods(http.MethodGet)
	api.Path("/gettxoutsetinfo").Handler(s.handle("gettxoutsetinfo", s.getTxOutSetInfo)).Methods(http.MethodGet)
	api.Path("/getchaintxstats").Handler(s.handle("getchaintxstats", s.getChainTxStats)).Methods(http.MethodGet)
	api.Path("/getchaintxstats/{" + paramBlockHash + "}").Handler(s.handle("getchaintxstats", s.getChainTxStats)).Methods(http.MethodGet)
	api.Path("/getdifficulty").Handler(s.handle("getdifficulty", s.getDifficulty)).Methods(http.MethodGet)
	api.Path("/getblockhash").Handler(s.handle("getblockhash", s.getBlockHash)).Methods(http.MethodGet)
	api.Path("/getnetworkhashps").Handler(s.handle("getnetworkhashps", s.getNetworkHashPS)).Methods(http.MethodGet)
	api.Path("/getblock").Handler(s.handle("getblock", s.getBlock)).Methods(http.MethodGet)
	return router
}

// handle encodes the result of f, or its error, and records the request.
func (s *Service) handle(endpoint string, f apiFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := http.StatusOK
		res, err := f(r)
		if err != nil {
			writeError(w, err)
			status = apierr.KindOf(err).HTTPStatus()
			utils.Logger().Debug().Err(err).Str("endpoint", endpoint).Msg("Gateway request failed")
		} else {
			writeJSON(w, http.StatusOK, res)
		}
		observeRequest(endpoint, status, time.Since(start))
	})
}

func (s *Service) welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(welcome)); err != nil {
		utils.Logger().Debug().Err(err).Msg("cannot write welcome")
	}
}

func (s *Service) getDashboard(r *http.Request) (interface{}, error) {
	return s.snapshots.Snapshot(r.Context())
}

func (s *Service) getBlockCount(r *http.Request) (interface{}, error) {
	return s.provider.GetBlockCount(r.Context())
}

func (s *Service) getBlockStats(r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	if err := notImplementedParam(q, paramStats); err != nil {
		return nil, err
	}
	arg, ok := mux.Vars(r)[paramHashOrHeight]
	if !ok {
		var err error
		if arg, err = requiredParam(q, paramHashOrHeight); err != nil {
			return nil, err
		}
	}
	target, err := ParseBlockTarget(arg)
	if err != nil {
		return nil, err
	}
	return s.provider.GetBlockStats(r.Context(), target)
}

func (s *Service) getTxOutSetInfo(r *http.Request) (interface{}, error) {
	if err := notImplementedParam(r.URL.Query(), paramHashType); err != nil {
		return nil, err
	}
	return s.provider.GetTxOutSetInfo(r.Context())
}

func (s *Service) getChainTxStats(r *http.Request) (interface{}, error) {
	args, err := chainTxStatsArgs(r.URL.Query(), mux.Vars(r)[paramBlockHash])
	if err != nil {
		return nil, err
	}
	return s.provider.GetChainTxStats(r.Context(), args)
}

func (s *Service) getDifficulty(r *http.Request) (interface{}, error) {
	return s.provider.GetDifficulty(r.Context())
}

func (s *Service) getBlockHash(r *http.Request) (interface{}, error) {
	height, err := requiredUint64(r.URL.Query(), paramHeight)
	if err != nil {
		return nil, err
	}
	return s.provider.GetBlockHash(r.Context(), height)
}

func (s *Service) getNetworkHashPS(r *http.Request) (interface{}, error) {
	args, err := networkHashPSArgs(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return s.provider.GetNetworkHashPS(r.Context(), args)
}

func (s *Service) getBlock(r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	arg, err := requiredParam(q, paramBlockHash)
	if err != nil {
		return nil, err
	}
	hash, err := ParseBlockHash(arg)
	if err != nil {
		return nil, err
	}
	verbosity, err := ParseVerbosity(q.Get(paramVerbosity))
	if err != nil {
		return nil, err
	}
	return s.provider.GetBlock(r.Context(), hash, verbosity)
}
