package model

type GameStatus string

const (
	GameStatusPlaying   GameStatus = "playing"
	GameStatusCheck     GameStatus = "check"
	GameStatusCheckmate GameStatus = "checkmate"
	GameStatusStalemate GameStatus = "stalemate"
	// GameStatusDraw is part of the status vocabulary but nothing in the
	// engine produces it; board history is recorded, never adjudicated.
	GameStatusDraw GameStatus = "draw"
)

// Game is one match. It is not safe for concurrent use; callers that share
// a Game across goroutines must serialise access themselves.
type Game struct {
	board          Board
	toMove         PlayerColor
	status         GameStatus
	moveHistory    []SimpleMove
	boardHistory   []string
	capturedPieces CapturedPieces
	lastMove       *SimpleMove
	strictCastling bool
}

// GameState is a detached, JSON friendly view of a Game.
type GameState struct {
	Board          Board          `json:"board"`
	ToMove         PlayerColor    `json:"toMove"`
	Status         GameStatus     `json:"status"`
	IsCheck        bool           `json:"isCheck"`
	MoveHistory    []SimpleMove   `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *SimpleMove    `json:"lastMove"`
	Ply            int            `json:"ply"`
}

type Option func(*Game)

// WithStrictCastling makes castling out of or through an attacked square
// illegal. By default only the king's landing square is checked.
func WithStrictCastling(strict bool) Option {
	return func(g *Game) {
		g.strictCastling = strict
	}
}

// NewGame sets up the standard starting position with white to move.
func NewGame(opts ...Option) *Game {
	return newGameFromBoard(newBoard(), PlayerColorWhite, opts...)
}

func newGameFromBoard(board Board, toMove PlayerColor, opts ...Option) *Game {
	g := &Game{
		board:          board,
		toMove:         toMove,
		status:         GameStatusPlaying,
		moveHistory:    make([]SimpleMove, 0),
		boardHistory:   make([]string, 0),
		capturedPieces: newCapturedPieces(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.boardHistory = append(g.boardHistory, g.board.snapshot())
	g.updateStatus()
	return g
}

// Board returns a copy of the grid; changing it has no effect on the game.
func (g *Game) Board() Board {
	return g.board.Clone()
}

func (g *Game) CurrentPlayer() PlayerColor {
	return g.toMove
}

func (g *Game) Status() GameStatus {
	return g.status
}

// IsOver reports whether the game reached checkmate or stalemate.
func (g *Game) IsOver() bool {
	return g.status == GameStatusCheckmate || g.status == GameStatusStalemate
}

// Winner is the side that delivered checkmate.
func (g *Game) Winner() (PlayerColor, bool) {
	if g.status != GameStatusCheckmate {
		return "", false
	}
	return g.toMove.Opponent(), true
}

func (g *Game) MoveHistory() []SimpleMove {
	return append([]SimpleMove(nil), g.moveHistory...)
}

// BoardHistory returns one snapshot per ply, starting with the initial
// position.
func (g *Game) BoardHistory() []string {
	return append([]string(nil), g.boardHistory...)
}

func (g *Game) LastMove() (SimpleMove, bool) {
	if g.lastMove == nil {
		return SimpleMove{}, false
	}
	return *g.lastMove, true
}

func (g *Game) CapturedPieces() CapturedPieces {
	return g.capturedPieces.clone()
}

func (g *Game) State() GameState {
	var lastMove *SimpleMove
	if g.lastMove != nil {
		lm := *g.lastMove
		lastMove = &lm
	}
	return GameState{
		Board:          g.Board(),
		ToMove:         g.toMove,
		Status:         g.status,
		IsCheck:        g.status == GameStatusCheck || g.status == GameStatusCheckmate,
		MoveHistory:    g.MoveHistory(),
		CapturedPieces: g.CapturedPieces(),
		LastMove:       lastMove,
		Ply:            len(g.moveHistory),
	}
}

// PossibleMoves lists the legal destinations for piece. The piece is
// looked up by its position; if the board holds something else there the
// result is empty. Pieces of the side not to move are answered too.
func (g *Game) PossibleMoves(piece Piece) []Position {
	own := g.board.At(piece.Position)
	if own == nil || own.Type != piece.Type || own.Color != piece.Color {
		return []Position{}
	}
	return g.getLegalMovesForPiece(own)
}

// MovesFrom lists the legal destinations of whatever stands on pos.
func (g *Game) MovesFrom(pos Position) []Position {
	piece := g.board.At(pos)
	if piece == nil {
		return []Position{}
	}
	return g.getLegalMovesForPiece(piece)
}

// MakeMove plays one ply for the side to move. It returns false and leaves
// the game untouched when from holds no piece of that side or to is not a
// legal destination.
func (g *Game) MakeMove(from, to Position) bool {
	if !boundaryCheck(from) || !boundaryCheck(to) {
		return false
	}
	piece := g.board.At(from)
	if piece == nil || piece.Color != g.toMove {
		return false
	}
	if !containsPosition(g.getLegalMovesForPiece(piece), to) {
		return false
	}

	next, captured := g.board.applyMove(from, to)
	// The candidate was already filtered; this guards the commit itself.
	if next.isInCheck(g.toMove) {
		return false
	}

	g.board = next
	if captured != nil {
		g.capturedPieces.record(g.toMove, *captured)
	}
	move := SimpleMove{From: from, To: to}
	g.moveHistory = append(g.moveHistory, move)
	g.lastMove = &move
	g.boardHistory = append(g.boardHistory, g.board.snapshot())
	g.switchTurn()
	g.updateStatus()
	return true
}

func (g *Game) castlingMode() castlingMode {
	if g.strictCastling {
		return castlingStrict
	}
	return castlingRelaxed
}

// getLegalMovesForPiece tries every candidate on a copy of the board and
// keeps those that do not leave the mover in check. The live board is never
// written to.
func (g *Game) getLegalMovesForPiece(piece *Piece) []Position {
	legalMoves := []Position{}
	for _, to := range g.board.pseudoMoves(piece, g.castlingMode()) {
		next, _ := g.board.applyMove(piece.Position, to)
		if !next.isInCheck(piece.Color) {
			legalMoves = append(legalMoves, to)
		}
	}
	return legalMoves
}

func (g *Game) hasLegalMoves(color PlayerColor) bool {
	for _, piece := range g.board.Pieces(color) {
		if len(g.getLegalMovesForPiece(piece)) > 0 {
			return true
		}
	}
	return false
}

// updateStatus derives the status for the side now to move.
func (g *Game) updateStatus() {
	inCheck := g.board.isInCheck(g.toMove)
	hasMoves := g.hasLegalMoves(g.toMove)
	switch {
	case inCheck && !hasMoves:
		g.status = GameStatusCheckmate
	case !hasMoves:
		g.status = GameStatusStalemate
	case inCheck:
		g.status = GameStatusCheck
	default:
		g.status = GameStatusPlaying
	}
}

func (g *Game) switchTurn() {
	g.toMove = g.toMove.Opponent()
}
