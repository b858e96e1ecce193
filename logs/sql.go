package logs

const createDecisionTable = `
CREATE TABLE IF NOT EXISTS decisions (
  game varchar not null,
  turn int not null,
  agent int not null,
  role string,
  action string,
  value int,
  features string,
  time datetime
)`

const createGameView = `
CREATE VIEW IF NOT EXISTS games (
  game, agents, turns, attacks, started
) AS
SELECT game, COUNT(DISTINCT agent), COUNT(*),
       SUM(CASE role WHEN 'attack' THEN 1 ELSE 0 END),
       MIN(time)
 FROM decisions
 GROUP BY game
`

const insertStmt = `
INSERT INTO decisions (game, turn, agent, role, action, value, features, time)
VALUES (:game, :turn, :agent, :role, :action, :value, :features, :time)
`

const selectGames = `
SELECT game, agents, turns, attacks, started FROM games ORDER BY started, game
`

const selectSummary = `
SELECT agent, role, action, COUNT(*) AS count
 FROM decisions
 WHERE game = ?
 GROUP BY agent, role, action
 ORDER BY agent, role, action
`

const selectDecisions = `
SELECT game, turn, agent, role, action, value, features, time
 FROM decisions
 WHERE game = ?
 ORDER BY turn, agent
`
