package emitter

// runtimePreamble is emitted verbatim at the top of every generated module,
// ahead of the dep imports. The Array/String prototype patches are guarded
// by a marker flag so a program that imports several generated modules
// only pays for them once.
const runtimePreamble = `if (!Array.prototype.__kimchiPatched) {
  Object.defineProperties(Array.prototype, {
    first: { value: function () { return this[0]; } },
    last: { value: function () { return this[this.length - 1]; } },
    isEmpty: { value: function () { return this.length === 0; } },
    sum: { value: function () { return this.reduce((a, b) => a + b, 0); } },
    product: { value: function () { return this.reduce((a, b) => a * b, 1); } },
    average: { value: function () { return this.length === 0 ? 0 : this.sum() / this.length; } },
    max: { value: function () { return this.reduce((a, b) => (b > a ? b : a)); } },
    min: { value: function () { return this.reduce((a, b) => (b < a ? b : a)); } },
    take: { value: function (n) { return this.slice(0, n); } },
    drop: { value: function (n) { return this.slice(n); } },
    flatten: { value: function () { return this.reduce((a, b) => a.concat(Array.isArray(b) ? b.flatten() : [b]), []); } },
    unique: { value: function () { return [...new Set(this)]; } },
  });
  Array.prototype.__kimchiPatched = true;
}
if (!String.prototype.__kimchiPatched) {
  Object.defineProperties(String.prototype, {
    isEmpty: { value: function () { return this.length === 0; } },
    isBlank: { value: function () { return this.trim().length === 0; } },
    toChars: { value: function () { return this.split(""); } },
    toLines: { value: function () { return this.split("\n"); } },
    capitalize: { value: function () { return this.length === 0 ? this : this[0].toUpperCase() + this.slice(1); } },
  });
  String.prototype.__kimchiPatched = true;
}

const _obj = {
  freeze(o) { return Object.freeze(o); },
  merge(...sources) { return Object.freeze(Object.assign({}, ...sources)); },
};

function error(message, kind) {
  const e = new Error(message);
  e.kind = kind || "Error";
  return e;
}
error.create = function (kind) {
  return function (message) { return error(message, kind); };
};

class _Secret {
  constructor(value) { this._value = value; }
  toString() { return "********"; }
  toJSON() { return "********"; }
  valueOf() { return this._value; }
}
function _secret(value) { return new _Secret(value); }

function _deepFreeze(value) {
  if (value === null || typeof value !== "object") return value;
  if (Object.isFrozen(value)) return value;
  Object.getOwnPropertyNames(value).forEach((name) => _deepFreeze(value[name]));
  return Object.freeze(value);
}

const _kimchiTestState = { describeStack: [], results: [] };
function _describe(name, body) {
  _kimchiTestState.describeStack.push(name);
  try {
    body();
  } finally {
    _kimchiTestState.describeStack.pop();
  }
}
function _test(name, body) {
  const label = _kimchiTestState.describeStack.concat(name).join(" > ");
  try {
    body();
    _kimchiTestState.results.push({ name: label, passed: true });
  } catch (err) {
    _kimchiTestState.results.push({ name: label, passed: false, error: String((err && err.message) || err) });
  }
}
function _expect(actual) {
  return {
    toEqual(expected) {
      if (JSON.stringify(actual) !== JSON.stringify(expected)) {
        throw error("expected " + JSON.stringify(actual) + " to equal " + JSON.stringify(expected));
      }
    },
    toBe(expected) {
      if (actual !== expected) throw error("expected " + actual + " to be " + expected);
    },
    toBeTruthy() {
      if (!actual) throw error("expected value to be truthy");
    },
    toBeFalsy() {
      if (actual) throw error("expected value to be falsy");
    },
    toThrow() {
      let threw = false;
      try {
        actual();
      } catch (_e) {
        threw = true;
      }
      if (!threw) throw error("expected function to throw");
    },
  };
}
function _assert(cond, message) {
  if (!cond) throw error(message || "assertion failed");
}
function _runTests() {
  return _kimchiTestState.results;
}
`

// shellRuntimeHelper is appended after runtimePreamble only when the
// program contains at least one shell block, per the emitter contract's
// "only emitted when shell blocks exist" rule.
const shellRuntimeHelper = `
function _shell(command, vars) {
  const { execSync } = require("child_process");
  let interpolated = command;
  if (vars) {
    for (const key of Object.keys(vars)) {
      interpolated = interpolated.split("$" + key).join(String(vars[key]));
    }
  }
  try {
    const stdout = execSync(interpolated, { encoding: "utf8" });
    return { stdout, stderr: "", exitCode: 0 };
  } catch (err) {
    return {
      stdout: err.stdout ? String(err.stdout) : "",
      stderr: err.stderr ? String(err.stderr) : String(err.message),
      exitCode: typeof err.status === "number" ? err.status : 1,
    };
  }
}
`
