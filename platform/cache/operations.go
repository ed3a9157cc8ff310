package cache

import (
	"github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"
)

func Get(key string, conn *redis.Conn) (string, error) {
	data, err := redis.String((*conn).Do("GET", key))
	if err != nil {
		return "", err
	}
	return data, nil
}

func Set(key string, value interface{}, conn *redis.Conn) bool {
	reply, err := redis.String((*conn).Do("SET", key, value))
	if reply != "OK" || err != nil {
		logrus.WithError(err).Errorf("redis SET %s failed", key)
		return false
	}
	return true
}

func Del(key string, conn *redis.Conn) error {
	_, err := (*conn).Do("DEL", key)
	return err
}

func HSET(key string, field string, value interface{}, conn *redis.Conn) error {
	_, err := (*conn).Do("HSET", key, field, value)
	return err
}

func HGET(key string, field string, conn *redis.Conn) (string, error) {
	return redis.String((*conn).Do("HGET", key, field))
}

func HINCRBY(key string, field string, n int, conn *redis.Conn) (int, error) {
	return redis.Int((*conn).Do("HINCRBY", key, field, n))
}

func KeysByPattern(pattern string, conn *redis.Conn) ([]string, error) {
	return redis.Strings((*conn).Do("KEYS", pattern))
}
